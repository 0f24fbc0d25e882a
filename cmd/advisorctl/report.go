package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"advisor_backend/internal/app/di"
	reportusecase "advisor_backend/internal/feature/report/usecase"
	"advisor_backend/internal/feature/transform/domain/entity"
	transformusecase "advisor_backend/internal/feature/transform/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Research a company and generate its transformation report",
	Long: `Report runs the full start pipeline (web research, document parsing, use case
generation and PDF report) for one company and prints the report URL.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("company-name", "", "company to research (required)")
	reportCmd.Flags().String("company-url", "", "company homepage (default guessed from the name)")
	reportCmd.Flags().StringSlice("files", nil, "document URLs to include (s3://, file://, https://<bucket>.s3.amazonaws.com/)")
	reportCmd.Flags().String("prompt", "", "custom focus for the analysis")
	reportCmd.Flags().String("dump-xml", "", "write the tagged report text to this file (skips the result cache)")

	for _, name := range []string{"company-name", "company-url", "files", "prompt", "dump-xml"} {
		_ = viper.BindPFlag(name, reportCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(reportCmd)
}

// xmlCapture keeps the tagged report text produced by the reporter.
type xmlCapture struct {
	transformusecase.Reporter
	xml string
}

func (c *xmlCapture) Generate(ctx context.Context, in reportusecase.Input) (*reportusecase.Result, error) {
	res, err := c.Reporter.Generate(ctx, in)
	if res != nil {
		c.xml = res.XML
	}
	return res, err
}

// refreshCache never serves cached results but still stores fresh ones.
// --dump-xml needs the reporter to run.
type refreshCache struct {
	transformusecase.ResultCache
}

func (refreshCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// writeXMLDump writes the captured report text to path. It fails when nothing was captured.
func writeXMLDump(path, xml string) error {
	if xml == "" {
		return fmt.Errorf("no report text was produced, %s not written", path)
	}
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	name := viper.GetString("company-name")
	if name == "" {
		return errors.New("--company-name is required")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	infra, err := di.OpenInfra(ctx, di.WithLocalFiles())
	if err != nil {
		return err
	}
	defer infra.Close()

	svc := di.NewServices(infra)
	capture := &xmlCapture{Reporter: svc.Reporter}
	svc.Reporter = capture
	dumpPath := viper.GetString("dump-xml")
	if dumpPath != "" {
		svc.Deps.Cache = refreshCache{ResultCache: svc.Deps.Cache}
	}

	resp, err := svc.Transformer().Process(ctx, entity.Request{
		CompanyName: name,
		CompanyURL:  viper.GetString("company-url"),
		Action:      entity.ActionStart,
		Files:       viper.GetStringSlice("files"),
		Prompt:      viper.GetString("prompt"),
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if dumpPath != "" {
		if err := writeXMLDump(dumpPath, capture.xml); err != nil {
			return err
		}
	}
	if resp.ReportURL == "" {
		return fmt.Errorf("no report was generated for session %s (status %s)", resp.SessionID, resp.Status)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.ReportURL)
	return nil
}
