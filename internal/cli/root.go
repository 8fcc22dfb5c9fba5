// Package cli wires the invoice pipeline behind a cobra command.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smallbiznis/invoicer/internal/asana"
	"github.com/smallbiznis/invoicer/internal/config"
	"github.com/smallbiznis/invoicer/internal/editor"
	"github.com/smallbiznis/invoicer/internal/invoice/assemble"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/logger"
	"github.com/smallbiznis/invoicer/internal/party"
	"github.com/smallbiznis/invoicer/internal/render"
	"github.com/smallbiznis/invoicer/internal/secrets"
)

// NewRootCommand builds the invoicer command. Two linear paths:
// direct mode renders straight from the invoice file, increment mode
// seeds from a prior invoice and passes through the editor first.
func NewRootCommand() *cobra.Command {
	var (
		invoiceFile   string
		incrementFrom string
		partiesDir    string
		secretsFile   string
		logLevel      string
	)

	cmd := &cobra.Command{
		Use:           "invoicer",
		Short:         "Generate a PDF invoice from a JSON description of billable work",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if partiesDir != "" {
				cfg.PartiesDir = partiesDir
			}
			if secretsFile != "" {
				cfg.SecretsFile = secretsFile
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			return run(cmd.Context(), cfg, log, invoiceFile, incrementFrom)
		},
	}

	cmd.Flags().StringVar(&invoiceFile, "invoice-file", "", "path to the invoice description file")
	cmd.Flags().StringVar(&incrementFrom, "increment-from", "", "seed from a prior invoice snapshot and open the editor")
	cmd.Flags().StringVar(&partiesDir, "parties", "", "override the parties directory")
	cmd.Flags().StringVar(&secretsFile, "secrets", "", "override the secrets file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "override the log level")
	_ = cmd.MarkFlagRequired("invoice-file")

	return cmd
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger, invoiceFile, incrementFrom string) error {
	in, err := assemble.LoadInput(invoiceFile)
	if err != nil {
		return err
	}

	var prior *domain.Document
	if incrementFrom != "" {
		p, err := assemble.LoadPrior(incrementFrom)
		if err != nil {
			return err
		}
		prior = &p
		// The input may leave ids to be inherited from the prior.
		if in.Supplier == "" {
			in.Supplier = p.SupplierID
		}
		if in.Client == "" {
			in.Client = p.ClientID
		}
	}

	parties := party.NewStore(cfg.PartiesDir)
	supplier, err := parties.Load(in.Supplier)
	if err != nil {
		return err
	}
	payer, err := parties.Load(in.Client)
	if err != nil {
		return err
	}

	sec, err := secrets.Load(cfg.SecretsFile, in.Supplier)
	if err != nil {
		return err
	}

	rate := cfg.DefaultRate
	if sec.DefaultRate != "" {
		rate = sec.DefaultRate
	}
	defaultRate, err := decimal.NewFromString(rate)
	if err != nil {
		return fmt.Errorf("invalid default rate %q: %w", rate, err)
	}

	tasks, err := fetchTasks(ctx, cfg, log, in, prior, sec)
	if err != nil {
		return err
	}

	doc, err := assemble.Assemble(in, prior, tasks, assemble.Options{
		Supplier:       supplier,
		Client:         payer,
		Currency:       cfg.Currency,
		DefaultRate:    defaultRate,
		NumberTemplate: cfg.NumberTemplate,
	})
	if err != nil {
		return err
	}

	if prior != nil {
		log.Info("opening editor", zap.String("editor", cfg.Editor))
		doc, err = editor.Edit(doc, cfg.Editor)
		if err != nil {
			return err
		}
		if err := doc.Validate(); err != nil {
			return err
		}
	}

	path, err := render.Write(doc, tasks, cfg.InvoicesDir)
	if err != nil {
		return err
	}
	log.Info("invoice written",
		zap.String("number", doc.Number),
		zap.String("total", doc.Total.StringFixed(2)+" "+doc.Currency),
		zap.String("path", path),
	)
	return nil
}

// fetchTasks pulls completed tasks for the billing period. The
// on_fetch_error policy decides whether a broken fetch fails the run
// or degrades to an empty task list.
func fetchTasks(ctx context.Context, cfg config.Config, log *zap.Logger, in assemble.Input, prior *domain.Document, sec secrets.Secrets) ([]asana.Task, error) {
	if sec.AsanaToken == "" {
		log.Debug("no remote token configured, skipping task fetch")
		return nil, nil
	}

	from, to := assemble.Period(in, prior)
	if from.IsZero() || to.IsZero() {
		log.Warn("no billing period set, skipping task fetch")
		return nil, nil
	}

	client := asana.New(sec.AsanaToken, sec.AsanaWorkspace)
	tasks, err := client.FetchCompleted(ctx, from.Time, to.Time)
	if err != nil {
		if errors.Is(err, domain.ErrRemote) && cfg.OnFetchError == config.OnFetchErrorWarn {
			log.Warn("task fetch failed, continuing without remote tasks", zap.Error(err))
			return nil, nil
		}
		return nil, err
	}
	log.Info("fetched completed tasks", zap.Int("count", len(tasks)),
		zap.String("from", from.String()), zap.String("to", to.String()))
	return tasks, nil
}
