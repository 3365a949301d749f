package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spent/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update one configuration value",
	Long: `Update one configuration value and write the config file.

Keys: default_file, data_dir, max_expense_amount, max_description_length,
max_expense_records, pie_chart_threshold`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.ConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default file: %s\n", cfg.General.DefaultFile)
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data dir:     %s\n", cfg.General.DataDir)
	}
	fmt.Println()

	fmt.Println("  [Limits]")
	fmt.Printf("    Max expense amount:     %d\n", cfg.Limits.MaxExpenseAmount)
	fmt.Printf("    Max description length: %d\n", cfg.Limits.MaxDescriptionLength)
	fmt.Printf("    Max expense records:    %d\n", cfg.Limits.MaxExpenseRecords)
	fmt.Printf("    Pie chart threshold:    %.1f%%\n", cfg.Limits.PieChartThreshold)
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "default_file":
		cfg.General.DefaultFile = value
	case "data_dir":
		cfg.General.DataDir = value
	case "max_expense_amount":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.Limits.MaxExpenseAmount = n
	case "max_description_length":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.Limits.MaxDescriptionLength = n
	case "max_expense_records":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.Limits.MaxExpenseRecords = n
	case "pie_chart_threshold":
		f, err := strconv.ParseFloat(value, 64)
		// Zero is indistinguishable from an absent key when the file is
		// read back, so it cannot be stored.
		if err != nil || f <= 0 || f > 100 {
			return fmt.Errorf("%s must be a percentage greater than 0 and at most 100", key)
		}
		cfg.Limits.PieChartThreshold = f
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("  Set %s = %s\n", key, value)
	return nil
}
