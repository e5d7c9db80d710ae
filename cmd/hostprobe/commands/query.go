package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/prabalesh/hostprobe/internal/collector"
	"github.com/prabalesh/hostprobe/internal/models"
)

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Print the host platform identifier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		platform := c.Platform()
		return printResult(cmd.OutOrStdout(), map[string]string{"platform": platform}, func(w io.Writer) {
			fmt.Fprintln(w, platform)
		})
	},
}

var uptimeCmd = &cobra.Command{
	Use:   "uptime",
	Short: "Print seconds since boot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		uptime, err := c.Uptime(cmd.Context())
		if err != nil {
			return fmt.Errorf("uptime: %w", err)
		}
		return printResult(cmd.OutOrStdout(), map[string]uint64{"uptime": uptime}, func(w io.Writer) {
			fmt.Fprintf(w, "%d (%s)\n", uptime, time.Duration(uptime)*time.Second)
		})
	},
}

var cpuCmd = &cobra.Command{
	Use:   "cpu",
	Short: "Sample CPU load over one interval",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		load, err := c.CPULoad(cmd.Context())
		if err != nil {
			return fmt.Errorf("cpu load: %w", err)
		}
		return printResult(cmd.OutOrStdout(), map[string]int{"cpu": load}, func(w io.Writer) {
			fmt.Fprintf(w, "%d%%\n", load)
		})
	},
}

var memCmd = &cobra.Command{
	Use:   "mem",
	Short: "Print memory usage percentage",
	Long: `Print memory usage as a percentage of total memory.

On darwin the value is the free percentage reported by memory_pressure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		usage, err := c.MemoryUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("memory usage: %w", err)
		}
		return printResult(cmd.OutOrStdout(), map[string]int{"memory": usage}, func(w io.Writer) {
			fmt.Fprintf(w, "%d%%\n", usage)
		})
	},
}

var (
	psSort  string
	psOrder string
	psLimit int
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List processes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var spec *models.SortSpec
		if psSort != "" {
			parsed, err := models.ParseSortSpec(psSort, psOrder)
			if err != nil {
				return err
			}
			spec = &parsed
		}

		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		procs, err := c.CurrentProcesses(cmd.Context(), spec)
		if err != nil {
			return fmt.Errorf("list processes: %w", err)
		}
		if psLimit > 0 && len(procs) > psLimit {
			procs = procs[:psLimit]
		}

		return printResult(cmd.OutOrStdout(), procs, func(w io.Writer) {
			writeProcesses(w, procs)
		})
	},
}

func writeProcesses(w io.Writer, procs []models.Process) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PID\tCPU%\tMEM%\t NAME")
	for _, p := range procs {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t %s\n", p.PID, p.CPUPercent, p.MemPercent, p.Name)
	}
	tw.Flush()
}

var (
	svcNames   []string
	svcRunning bool
	svcStopped bool
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List init services and their run state (linux only)",
	Long: `List services reported by "service --status-all".

Each --name, --running or --stopped flag adds a filter; the output then holds
the first service matching each filter, in flag order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if svcRunning && svcStopped {
			return fmt.Errorf("--running and --stopped are mutually exclusive")
		}

		var filters []collector.ServiceFilter
		for _, name := range svcNames {
			filters = append(filters, collector.ServiceNamed(name))
		}
		if svcRunning {
			filters = append(filters, collector.ServiceRunning(true))
		}
		if svcStopped {
			filters = append(filters, collector.ServiceRunning(false))
		}

		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		services, err := c.Services(cmd.Context(), filters...)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), services, func(w io.Writer) {
			writeServices(w, services)
		})
	},
}

func writeServices(w io.Writer, services []models.Service) {
	for _, svc := range services {
		marker := "-"
		if svc.Running {
			marker = "+"
		}
		fmt.Fprintf(w, " [ %s ]  %s\n", marker, svc.Name)
	}
}

var (
	reportSort  string
	reportOrder string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run every query once and print a combined report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := models.ParseSortSpec(reportSort, reportOrder)
		if err != nil {
			return err
		}

		c, log, err := newCollector()
		if err != nil {
			return err
		}
		defer log.Sync()

		report, err := c.Report(cmd.Context(), &spec)
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), report, func(w io.Writer) {
			writeReport(w, report)
		})
	},
}

func writeReport(w io.Writer, r models.Report) {
	field := func(query, value string) string {
		if msg, ok := r.Errors[query]; ok {
			return "error: " + msg
		}
		return value
	}

	fmt.Fprintf(w, "Platform:  %s\n", r.Platform)
	fmt.Fprintf(w, "Uptime:    %s\n", field(collector.QueryUptime, (time.Duration(r.Uptime)*time.Second).String()))
	fmt.Fprintf(w, "CPU:       %s\n", field(collector.QueryCPU, fmt.Sprintf("%d%%", r.CPULoad)))
	fmt.Fprintf(w, "Memory:    %s\n", field(collector.QueryMemory, fmt.Sprintf("%d%%", r.MemoryUsage)))
	fmt.Fprintf(w, "Processes: %s\n", field(collector.QueryProcesses, fmt.Sprintf("%d", len(r.Processes))))
	if r.Platform == "linux" {
		var running []string
		for _, svc := range r.Services {
			if svc.Running {
				running = append(running, svc.Name)
			}
		}
		fmt.Fprintf(w, "Services:  %s\n", field(collector.QueryServices,
			fmt.Sprintf("%d/%d running %s", len(running), len(r.Services), strings.Join(running, " "))))
	}
}

func init() {
	psCmd.Flags().StringVar(&psSort, "sort", "", "Sort field: pid, name, cpu or mem")
	psCmd.Flags().StringVar(&psOrder, "order", "asc", "Sort order: asc or desc")
	psCmd.Flags().IntVar(&psLimit, "limit", 0, "Show at most n processes (0 for all)")

	servicesCmd.Flags().StringArrayVar(&svcNames, "name", nil, "Select the service with this name (repeatable)")
	servicesCmd.Flags().BoolVar(&svcRunning, "running", false, "Select the first running service")
	servicesCmd.Flags().BoolVar(&svcStopped, "stopped", false, "Select the first stopped service")

	reportCmd.Flags().StringVar(&reportSort, "sort", "cpu", "Process sort field: pid, name, cpu or mem")
	reportCmd.Flags().StringVar(&reportOrder, "order", "desc", "Process sort order: asc or desc")
}
