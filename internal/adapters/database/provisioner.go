package database

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/realkdc/top-thc-brands/internal/infrastructure/clients/postgres"
)

// provisionStrategy is one way of bringing a table into existence. Strategies
// for a table run in order until one succeeds.
type provisionStrategy struct {
	name string
	sql  []string
}

// tableSpec describes a table and the ordered strategies that provision it
type tableSpec struct {
	name       string
	strategies []provisionStrategy
}

// ProvisionResult records the outcome of provisioning one table
type ProvisionResult struct {
	Table    string
	Existed  bool
	Strategy string
	Err      error
}

// TableProvisioner performs best-effort table bootstrap at process start.
// It is not safe for concurrent use; call Provision once before serving.
type TableProvisioner struct {
	client *postgres.Client
	tables []tableSpec
}

// NewTableProvisioner creates a provisioner covering the five service tables
func NewTableProvisioner(client *postgres.Client) *TableProvisioner {
	return &TableProvisioner{
		client: client,
		tables: serviceTables(),
	}
}

// Provision checks each table and runs its strategies in order until one
// succeeds. Failures are logged and collected but never abort startup; the
// returned results let callers surface a summary.
func (p *TableProvisioner) Provision(ctx context.Context) []ProvisionResult {
	results := make([]ProvisionResult, 0, len(p.tables))

	for _, table := range p.tables {
		result := p.provisionTable(ctx, table)

		evt := log.Info()
		if result.Err != nil {
			evt = log.Error().Err(result.Err)
		}
		evt.Str("table", result.Table).
			Bool("existed", result.Existed).
			Str("strategy", result.Strategy).
			Msg("table provisioning")

		results = append(results, result)
	}

	return results
}

func (p *TableProvisioner) provisionTable(ctx context.Context, table tableSpec) ProvisionResult {
	result := ProvisionResult{Table: table.name}

	missing, err := p.tableMissing(ctx, table.name)
	if err != nil {
		result.Err = fmt.Errorf("probe failed: %w", err)
		return result
	}
	if !missing {
		result.Existed = true
		return result
	}

	var lastErr error
	for _, strategy := range table.strategies {
		if lastErr = p.runStrategy(ctx, strategy); lastErr == nil {
			result.Strategy = strategy.name
			return result
		}
		log.Warn().Err(lastErr).
			Str("table", table.name).
			Str("strategy", strategy.name).
			Msg("provisioning strategy failed, trying next")
	}

	result.Err = fmt.Errorf("all strategies failed: %w", lastErr)
	return result
}

// tableMissing probes the table with a trivial select and treats an
// undefined_table error as missing. Any other failure bubbles up.
func (p *TableProvisioner) tableMissing(ctx context.Context, table string) (bool, error) {
	_, err := p.client.DB().ExecContext(ctx, fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", pq.QuoteIdentifier(table)))
	if err == nil {
		return false, nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "undefined_table" {
		return true, nil
	}
	return false, err
}

func (p *TableProvisioner) runStrategy(ctx context.Context, strategy provisionStrategy) error {
	for _, stmt := range strategy.sql {
		if _, err := p.client.DB().ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func serviceTables() []tableSpec {
	return []tableSpec{
		{
			name: "brands",
			strategies: []provisionStrategy{
				{
					name: "create_table",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS brands (
							id UUID PRIMARY KEY,
							name TEXT NOT NULL,
							description TEXT,
							logo_url TEXT,
							category TEXT,
							rating DOUBLE PRECISION NOT NULL DEFAULT 0,
							featured BOOLEAN NOT NULL DEFAULT false,
							website TEXT,
							product_types TEXT[] NOT NULL DEFAULT '{}',
							location TEXT,
							slug TEXT NOT NULL UNIQUE,
							created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
							updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
				{
					name: "create_table_minimal",
					sql: []string{
						`CREATE TABLE IF NOT EXISTS brands (id UUID PRIMARY KEY, name TEXT NOT NULL, slug TEXT NOT NULL)`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS description TEXT`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS logo_url TEXT`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS category TEXT`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS rating DOUBLE PRECISION NOT NULL DEFAULT 0`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS featured BOOLEAN NOT NULL DEFAULT false`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS website TEXT`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS product_types TEXT[] NOT NULL DEFAULT '{}'`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS location TEXT`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
						`ALTER TABLE brands ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
					},
				},
			},
		},
		{
			name: "contacts",
			strategies: []provisionStrategy{
				{
					name: "create_table",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS contacts (
							id UUID PRIMARY KEY,
							name TEXT NOT NULL,
							email TEXT NOT NULL,
							message TEXT NOT NULL,
							status TEXT NOT NULL DEFAULT 'pending',
							created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
							updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
			},
		},
		{
			name: "users",
			strategies: []provisionStrategy{
				{
					name: "create_table",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS users (
							id UUID PRIMARY KEY,
							email TEXT NOT NULL UNIQUE,
							password TEXT NOT NULL,
							name TEXT NOT NULL DEFAULT '',
							role TEXT NOT NULL DEFAULT 'user',
							last_login TIMESTAMPTZ,
							created_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
			},
		},
		{
			name: "subscribers",
			strategies: []provisionStrategy{
				{
					name: "create_table",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS subscribers (
							id UUID PRIMARY KEY,
							email TEXT NOT NULL UNIQUE,
							name TEXT,
							source TEXT NOT NULL DEFAULT 'website',
							confirmed BOOLEAN NOT NULL DEFAULT false,
							unsubscribed BOOLEAN NOT NULL DEFAULT false,
							unsubscribed_at TIMESTAMPTZ,
							created_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
				{
					name: "ensure_columns",
					sql: []string{
						`CREATE TABLE IF NOT EXISTS subscribers (id UUID PRIMARY KEY, email TEXT NOT NULL UNIQUE)`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS name TEXT`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS source TEXT NOT NULL DEFAULT 'website'`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS confirmed BOOLEAN NOT NULL DEFAULT false`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS unsubscribed BOOLEAN NOT NULL DEFAULT false`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS unsubscribed_at TIMESTAMPTZ`,
						`ALTER TABLE subscribers ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
					},
				},
			},
		},
		{
			name: "brand_leaderboard",
			strategies: []provisionStrategy{
				{
					name: "create_table",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS brand_leaderboard (
							id UUID PRIMARY KEY,
							brand_id UUID NOT NULL REFERENCES brands(id) ON DELETE CASCADE,
							potency INTEGER NOT NULL,
							flavor INTEGER NOT NULL,
							effects INTEGER NOT NULL,
							value INTEGER NOT NULL,
							overall INTEGER NOT NULL,
							created_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
				{
					// Without the brands FK in place the DDL above fails; a
					// standalone table still lets ratings accumulate.
					name: "create_table_unreferenced",
					sql: []string{`
						CREATE TABLE IF NOT EXISTS brand_leaderboard (
							id UUID PRIMARY KEY,
							brand_id UUID NOT NULL,
							potency INTEGER NOT NULL,
							flavor INTEGER NOT NULL,
							effects INTEGER NOT NULL,
							value INTEGER NOT NULL,
							overall INTEGER NOT NULL,
							created_at TIMESTAMPTZ NOT NULL DEFAULT now()
						)`,
					},
				},
			},
		},
	}
}
