package layout

// Default layout parameters. Chosen for sitemap-scale graphs (tens to low
// hundreds of nodes) on a roughly screen-sized canvas.
const (
	DefaultWidth  = 1600.0
	DefaultHeight = 1000.0

	DefaultMargin        = 60.0  // canvas edge to outermost columns
	DefaultGutter        = 40.0  // gap between adjacent columns
	DefaultColumnPadding = 40.0  // inner strip reserved on both column sides
	DefaultTopOffset     = 80.0  // y of the depth-0 row
	DefaultLevelSpacing  = 180.0 // vertical distance between depth rows

	DefaultRelaxIterations = 4
	DefaultRelaxStrength   = 0.6  // partial correction avoids oscillation
	DefaultRelaxPadding    = 12.0 // breathing room around bounding boxes

	DefaultRowDriftRatio = 0.3 // max vertical drift as a fraction of LevelSpacing
)

// Config holds all layout parameters. The zero value is usable: Normalize
// replaces every zero field with its default, so a partially filled Config
// (e.g. decoded from sitegrid.toml) works as expected.
type Config struct {
	// Canvas dimensions. Columns are sized to fit inside Width; Height is a
	// soft bound used by renderers, not enforced per node.
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`

	// Column allocation.
	Margin        float64 `toml:"margin" json:"margin,omitempty"`
	Gutter        float64 `toml:"gutter" json:"gutter,omitempty"`
	ColumnPadding float64 `toml:"column_padding" json:"column_padding,omitempty"`

	// Row placement.
	TopOffset    float64 `toml:"top_offset" json:"top_offset,omitempty"`
	LevelSpacing float64 `toml:"level_spacing" json:"level_spacing,omitempty"`

	// Overlap relaxation.
	RelaxIterations int     `toml:"relax_iterations" json:"relax_iterations,omitempty"`
	RelaxStrength   float64 `toml:"relax_strength" json:"relax_strength,omitempty"`
	RelaxPadding    float64 `toml:"relax_padding" json:"relax_padding,omitempty"`

	// Bounds reconciliation.
	RowDriftRatio float64 `toml:"row_drift_ratio" json:"row_drift_ratio,omitempty"`
}

// Normalize returns a copy of the config with zero fields replaced by
// defaults and out-of-range fields clamped. Strength is kept in (0, 1].
func (c Config) Normalize() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Margin == 0 {
		c.Margin = DefaultMargin
	}
	if c.Gutter == 0 {
		c.Gutter = DefaultGutter
	}
	if c.ColumnPadding == 0 {
		c.ColumnPadding = DefaultColumnPadding
	}
	if c.TopOffset == 0 {
		c.TopOffset = DefaultTopOffset
	}
	if c.LevelSpacing == 0 {
		c.LevelSpacing = DefaultLevelSpacing
	}
	if c.RelaxIterations == 0 {
		c.RelaxIterations = DefaultRelaxIterations
	}
	if c.RelaxStrength <= 0 || c.RelaxStrength > 1 {
		c.RelaxStrength = DefaultRelaxStrength
	}
	if c.RelaxPadding == 0 {
		c.RelaxPadding = DefaultRelaxPadding
	}
	if c.RowDriftRatio == 0 {
		c.RowDriftRatio = DefaultRowDriftRatio
	}
	return c
}

// RowY returns the base row position for a depth level. The formula is the
// same for every category, which is what keeps equal depths horizontally
// aligned across columns.
func (c Config) RowY(depth int) float64 {
	return c.TopOffset + float64(depth)*c.LevelSpacing
}

// MaxRowDrift returns how far reconciliation lets a node drift from its
// depth-aligned row.
func (c Config) MaxRowDrift() float64 {
	return c.RowDriftRatio * c.LevelSpacing
}
