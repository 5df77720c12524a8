package manifest

// SummaryManifest describes one analysis run: where the data came from, how
// it was partitioned and how the two strategies compared.
type SummaryManifest struct {
	GeneratedAt       string    `json:"generated_at" yaml:"generated_at"`
	RunID             string    `json:"run_id" yaml:"run_id"`
	Source            string    `json:"source" yaml:"source"`
	FeesPath          string    `json:"fees_path" yaml:"fees_path"`
	StudentsPath      string    `json:"students_path,omitempty" yaml:"students_path,omitempty"`
	InputSizeBytes    int64     `json:"input_size_bytes,omitempty" yaml:"input_size_bytes,omitempty"`
	Records           int       `json:"records" yaml:"records"`
	Students          int       `json:"students" yaml:"students"`
	SequentialSeconds float64   `json:"sequential_seconds" yaml:"sequential_seconds"`
	Parallel          *Parallel `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	TopStudents       []string  `json:"top_students,omitempty" yaml:"top_students,omitempty"`
}

// Parallel summarizes the parallel half of a comparison run.
type Parallel struct {
	Strategy         string   `json:"strategy" yaml:"strategy"`
	Workers          int      `json:"workers" yaml:"workers"`
	ChunkSizes       []int    `json:"chunk_sizes" yaml:"chunk_sizes"`
	SpanningStudents []string `json:"spanning_students,omitempty" yaml:"spanning_students,omitempty"`
	Seconds          float64  `json:"seconds" yaml:"seconds"`
	SpeedupPercent   float64  `json:"speedup_percent" yaml:"speedup_percent"`
	MeetsTarget      bool     `json:"meets_target" yaml:"meets_target"`
	Equivalent       bool     `json:"equivalent" yaml:"equivalent"`
	Mismatches       int      `json:"mismatches" yaml:"mismatches"`
}
