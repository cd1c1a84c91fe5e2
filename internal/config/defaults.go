package config

// Default values for optional configuration fields.
const (
	DefaultFrequency   = "15m"
	DefaultOutputDir   = "./out"
	DefaultInventory   = "./spreads.csv"
	DefaultStatsOutput = "./spread_stats.csv"
)

// DefaultMainMonths is the Jan/May/Sep cycle used by the ferrous complex.
var DefaultMainMonths = []int{1, 5, 9}

func (c *Config) applyDefaults() {
	if len(c.Data.SearchRoots) == 0 {
		c.Data.SearchRoots = []string{"."}
	}
	if len(c.Generate.MainMonths) == 0 {
		c.Generate.MainMonths = append([]int(nil), DefaultMainMonths...)
	}
	if c.Generate.Inventory == "" {
		c.Generate.Inventory = DefaultInventory
	}
	if c.Batch.Inventory == "" {
		c.Batch.Inventory = c.Generate.Inventory
	}
	if c.Batch.StatsOutput == "" {
		c.Batch.StatsOutput = DefaultStatsOutput
	}
	if c.Formula.Frequency == "" {
		c.Formula.Frequency = DefaultFrequency
	}
	if c.Formula.OutputDir == "" {
		c.Formula.OutputDir = DefaultOutputDir
	}
}
