package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/praetorian-inc/netdump/internal/jq"
	"github.com/praetorian-inc/netdump/internal/message"
	outputproviders "github.com/praetorian-inc/netdump/internal/output_providers"
	"github.com/praetorian-inc/netdump/pkg/gcp/client"
	"github.com/praetorian-inc/netdump/pkg/topology"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errMissingToken = errors.New("access-token is a required parameter (or pass --use-adc)")

type topologyOptions struct {
	AccessToken     string
	UseADC          bool
	ProjectID       string
	OutputFile      string
	ErrorsFile      string
	Format          string
	Query           string
	SkipDefault     bool
	SkipSysProjects bool
	ActiveOnly      bool
	Timeout         time.Duration

	ComputeEndpoint         string
	ResourceManagerEndpoint string

	httpClient *http.Client
	errOut     io.Writer
}

func newNetworkTopologyCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "network-topology",
		Aliases: []string{"topology", "net-dump"},
		Short:   "Dump the VPC networks, peerings and subnetworks of GCP projects",
		Long: `Dump the network topology of the project(s) the access token can see.

For every project the VPC networks are listed together with their peerings, and
every subnetwork is resolved to its CIDR range, gateway address and secondary
ranges. A project that fails is reported separately and does not stop the run.

Generate an access token with "gcloud auth print-access-token".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := topologyOptions{
				AccessToken:             v.GetString("access-token"),
				UseADC:                  v.GetBool("use-adc"),
				ProjectID:               v.GetString("project-id"),
				OutputFile:              v.GetString("output-file"),
				ErrorsFile:              v.GetString("errors-file"),
				Format:                  v.GetString("format"),
				Query:                   v.GetString("query"),
				SkipDefault:             v.GetBool("skip-default"),
				SkipSysProjects:         v.GetBool("skip-sys-projects"),
				ActiveOnly:              v.GetBool("active-only"),
				Timeout:                 v.GetDuration("timeout"),
				ComputeEndpoint:         v.GetString("compute-endpoint"),
				ResourceManagerEndpoint: v.GetString("resource-manager-endpoint"),
				errOut:                  cmd.ErrOrStderr(),
			}
			return runNetworkTopology(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("access-token", "t", "", "access token of a user with access to the projects")
	flags.Bool("use-adc", false, "use application default credentials when no access token is given")
	flags.StringP("project-id", "p", "", "only dump this project (default is all projects)")
	flags.StringP("output-file", "o", outputproviders.DefaultOutputFile, "file the topology document is written to")
	flags.String("errors-file", "", "also write the per-project errors to this file")
	flags.StringP("format", "f", string(outputproviders.FormatJSON), "output format (json, yaml)")
	flags.String("query", "", "jq expression applied to the document before it is written")
	flags.Bool("skip-default", false, "skip the auto-created default networks")
	flags.Bool("skip-sys-projects", false, "skip Apps Script and other system projects when listing all projects")
	flags.Bool("active-only", false, "skip projects that are pending deletion")
	flags.Duration("timeout", 0, "overall deadline for the dump (0 means none)")
	flags.String("compute-endpoint", "", "override the Compute Engine API endpoint")
	flags.String("resource-manager-endpoint", "", "override the Cloud Resource Manager API endpoint")
	flags.SortFlags = false
	cobra.CheckErr(v.BindPFlags(flags))

	return cmd
}

func runNetworkTopology(ctx context.Context, opts topologyOptions) error {
	if opts.AccessToken == "" && !opts.UseADC {
		return errMissingToken
	}
	format, err := outputproviders.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.OutputFile == "" {
		opts.OutputFile = outputproviders.DefaultOutputFile
	}
	if opts.errOut == nil {
		opts.errOut = os.Stderr
	}

	// fail on an unusable output path before spending time on API calls
	if err := outputproviders.Probe(opts.OutputFile); err != nil {
		return fmt.Errorf("output file %s: %w", opts.OutputFile, err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	gcp, err := client.Authenticate(ctx, client.Config{
		AccessToken:             opts.AccessToken,
		UseADC:                  opts.UseADC,
		ComputeEndpoint:         opts.ComputeEndpoint,
		ResourceManagerEndpoint: opts.ResourceManagerEndpoint,
		HTTPClient:              opts.httpClient,
	})
	if err != nil {
		return err
	}

	aggregator := topology.NewAggregator(gcp, topology.NewFetcher(gcp, gcp))
	report, err := aggregator.Aggregate(ctx, topology.Options{
		ProjectID:       opts.ProjectID,
		SkipDefault:     opts.SkipDefault,
		SkipSysProjects: opts.SkipSysProjects,
		ActiveOnly:      opts.ActiveOnly,
	})
	if err != nil {
		if !interrupted(err) || report.Projects == nil {
			return err
		}
		// keep what was collected before the deadline
		message.Warning("Run interrupted after %d project(s), writing partial network topology", len(report.Projects))
		if werr := writeReport(context.WithoutCancel(ctx), opts, format, report); werr != nil {
			return werr
		}
		return err
	}
	slog.Info("Network topology collected", "projects", len(report.Projects), "errors", len(report.Errors))

	if err := writeReport(ctx, opts, format, report); err != nil {
		return err
	}
	message.Success("Network topology dump complete.")
	return nil
}

func interrupted(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func writeReport(ctx context.Context, opts topologyOptions, format outputproviders.Format, report topology.Report) error {
	var doc any = outputproviders.Document(report.Projects)
	if opts.Query != "" {
		var err error
		doc, err = jq.Query(ctx, doc, opts.Query)
		if err != nil {
			return err
		}
	}

	message.Info("Writing network topology to file: %s", opts.OutputFile)
	if err := outputproviders.WriteFile(opts.OutputFile, format, doc); err != nil {
		return fmt.Errorf("output file %s: %w", opts.OutputFile, err)
	}
	return reportProjectErrors(opts, report.Errors)
}

func reportProjectErrors(opts topologyOptions, errs []topology.ProjectError) error {
	if len(errs) == 0 {
		return nil
	}
	message.Error("Errors occurred during processing: %d project(s) failed", len(errs))
	if err := outputproviders.WriteErrors(opts.errOut, errs); err != nil {
		slog.Error("Failed to print project errors", "error", err)
	}
	if opts.ErrorsFile != "" {
		if err := outputproviders.WriteFile(opts.ErrorsFile, outputproviders.FormatJSON, outputproviders.ErrorPairs(errs)); err != nil {
			return fmt.Errorf("errors file %s: %w", opts.ErrorsFile, err)
		}
	}
	return nil
}
