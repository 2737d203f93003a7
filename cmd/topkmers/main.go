// Command topkmers lists the most frequent k-mers of a FASTQ file.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ledgerwatch/log/v3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/muratgenctav/topkmers/counting"
	"github.com/muratgenctav/topkmers/export"
	"github.com/muratgenctav/topkmers/kmer"
	"github.com/muratgenctav/topkmers/metrics"
	"github.com/muratgenctav/topkmers/seqfile"
)

const version = "1.0.0"

func rootCommand() *cobra.Command {
	var flags Config
	var configPath string

	cmd := &cobra.Command{
		Use:   "topkmers",
		Short: "Find and list the top k-mers of a sequence file",
		Long: fmt.Sprintf(`Find and list the top k-mers of a sequence file.

The k-mer space is split into one partition per thread; each thread reads the
whole file and counts the k-mers of its partition. Frequency tables share a
ceiling of --capacity keys. Once a table is full, k-mers it has not seen are
no longer counted, so counts are approximate on inputs with more distinct
k-mers than the ceiling. Bases other than ACGT are counted as A.

k is at most %d, topcount at most %d, numthreads at most %d.`, kmer.MaxK, counting.MaxTopK, counting.MaxWorkers),
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd.Flags(), flags, configPath)
			if err != nil {
				return err
			}
			return run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Input, "input", "i", "", "Path to FASTQ file (required)")
	f.StringVarP(&flags.Format, "format", "f", "fastq", "Input format: fastq (4 lines per record) or fastx (FASTA/FASTQ, gzip allowed)")
	f.IntVarP(&flags.K, "kmerlength", "k", 0, fmt.Sprintf("Length of k-mers, up to %d (required)", kmer.MaxK))
	f.IntVarP(&flags.TopK, "topcount", "n", 1, fmt.Sprintf("Number of top k-mers to list, up to %d", counting.MaxTopK))
	f.IntVarP(&flags.Workers, "numthreads", "t", 1, fmt.Sprintf("Number of threads, up to %d", counting.MaxWorkers))
	f.IntVar(&flags.Capacity, "capacity", counting.DefaultCapacity, "Maximum number of k-mers held in memory across all threads")
	f.StringVar(&flags.HDF5, "hdf5", "", "Also write the result to this HDF5 file")
	f.StringVar(&flags.MetricsFile, "metrics-file", "", "Write scan metrics to this Prometheus textfile")
	f.BoolVar(&flags.Stats, "stats", false, "Print per-thread scan statistics, with a distinct k-mer estimate")
	f.BoolVar(&flags.Progress, "progress", false, "Show per-thread progress bars")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log scan details")
	f.StringVarP(&configPath, "config", "c", "", "TOML file with default values for the flags above")
	return cmd
}

func setupLogging(w io.Writer, verbose bool) log.Logger {
	lvl := log.LvlWarn
	if verbose {
		lvl = log.LvlDebug
	}
	logger := log.Root()
	logger.SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(w, log.LogfmtFormat())))
	return logger
}

func run(cfg Config, stdout, stderr io.Writer) error {
	logger := setupLogging(stderr, cfg.Verbose)

	opts, err := cfg.options(logger)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return errors.New("please specify a valid input file with --input")
	}
	format, err := seqfile.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	src := seqfile.File{Path: cfg.Input, Format: format}
	if err := src.Open(); err != nil {
		return err
	}

	var progress *bars
	if cfg.Progress {
		progress = newBars(stderr)
		opts.Progress = progress
	}

	counter, err := counting.NewCounter(src, opts)
	if err != nil {
		return err
	}

	start := time.Now()
	top := counter.TopKmers()
	elapsed := time.Since(start)
	if progress != nil {
		progress.Wait()
	}
	fmt.Fprintf(stdout, "Completed in %.2f seconds.\n", elapsed.Seconds())
	for _, kc := range top {
		fmt.Fprintf(stdout, "%s : %d\n", kc.Kmer, kc.Count)
	}

	stats := counter.Stats()
	if cfg.Stats {
		printStats(stderr, stats)
	}
	if cfg.HDF5 != "" {
		if err := export.WriteHDF5(cfg.HDF5, opts.K, top); err != nil {
			return err
		}
	}
	if cfg.MetricsFile != "" {
		reg := prometheus.NewRegistry()
		scan, err := metrics.NewScan(reg)
		if err != nil {
			return err
		}
		scan.Observe(stats, elapsed)
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			return err
		}
	}
	return nil
}

func printStats(w io.Writer, stats []counting.PartitionStats) {
	for _, s := range stats {
		status := "ok"
		if s.Err != nil {
			status = s.Err.Error()
		}
		fmt.Fprintf(w, "thread %d [%d,%d): records=%d windows=%d skipped=%d dropped=%d kmers=%d distinct~%d %s\n",
			s.Worker, uint64(s.Partition.Start), uint64(s.Partition.End),
			s.Records, s.Windows, s.OutOfRange, s.Dropped, s.Distinct, s.EstimatedDistinct, status)
	}
}

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
