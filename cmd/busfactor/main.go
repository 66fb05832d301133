package main

import (
	"context"
	"fmt"
	"io"
	netHttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/m-zajac/busfactor/internal/adapter/github"
	"github.com/m-zajac/busfactor/internal/app"
	"github.com/m-zajac/busfactor/internal/limiter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	language     string
	projectCount int
	tokenPath    string
	concurrency  int
	apiAddress   string
	apiRateLimit float64
	timeout      time.Duration
}

func main() {
	l := logrus.New()
	l.Level = logrus.InfoLevel

	if err := newRootCmd(l).Execute(); err != nil {
		l.Fatalf("run failed: %v", err)
	}
}

func newRootCmd(l *logrus.Logger) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "busfactor",
		Short:        "Compute bus factor for the most popular github repositories of a language",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), l, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "programming language name")
	cmd.Flags().IntVarP(&opts.projectCount, "project-count", "p", 10, "number of most starred projects to consider")
	cmd.Flags().StringVarP(&opts.tokenPath, "token-path", "t", "./.token", "filepath for github api token, empty for anonymous access")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 8, "maximum number of concurrent contributor fetches")
	cmd.Flags().StringVar(&opts.apiAddress, "api-address", "https://api.github.com", "github api address")
	cmd.Flags().Float64Var(&opts.apiRateLimit, "api-rate-limit", 2, "max frequency for github api calls per second")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Minute, "overall run timeout")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func run(ctx context.Context, l *logrus.Logger, out io.Writer, opts options) error {
	token, err := readToken(opts.tokenPath)
	if err != nil {
		return err
	}

	httpClient := &netHttp.Client{
		Timeout: 30 * time.Second,
	}
	limitedHTTPClient := limiter.NewHTTPDoer(httpClient, opts.apiRateLimit)
	githubClient := github.NewClient(limitedHTTPClient, opts.apiAddress, token)

	service := app.NewService(
		githubClient,
		opts.concurrency,
		l.WithField("component", "service"),
	)
	service.OnProgress(func(done, total int) {
		l.Infof("processed %d/%d repositories", done, total)
	})

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	results, err := service.BusFactors(ctx, opts.language, opts.projectCount)
	if err != nil {
		return errors.Wrap(err, "computing bus factors")
	}
	printReport(out, results)

	return nil
}

func readToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading token file")
	}

	return strings.TrimSpace(string(b)), nil
}

func printReport(w io.Writer, results []app.BusFactorResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "project: %-40s stars: %-8d error: %v\n", res.Repository.ID(), res.Repository.Stars, res.Err)
			continue
		}
		fmt.Fprintf(w, "project: %-40s stars: %-8d bus factor: %d\n", res.Repository.ID(), res.Repository.Stars, res.BusFactor)
	}
}
