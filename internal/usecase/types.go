package usecase

import "time"

// Config contains all runtime configuration for one invocation.
type Config struct {
	DataDir    string
	BackupRoot string
	ToolPath   string
	MinFreeGB  int
	Verbose    bool

	Policy RetentionPolicy

	NotifyEnabled bool
	NotifyTo      string
	NotifyFrom    string
	SMTPServer    string
	SMTPPort      int
}

// Incremental is one delta snapshot inside a lineage.
type Incremental struct {
	Seq  int
	Path string
}

// Lineage is one day's base snapshot plus its ordered incremental chain.
// Incrementals are sorted ascending by sequence number.
type Lineage struct {
	Date         time.Time
	BaseDir      string
	Incrementals []Incremental
}

// LastSnapshotDir returns the directory of the newest snapshot in the
// lineage: the highest incremental, or the base when none exist.
func (l Lineage) LastSnapshotDir() string {
	if len(l.Incrementals) == 0 {
		return l.BaseDir
	}
	return l.Incrementals[len(l.Incrementals)-1].Path
}

// BackupKind selects which physical backup the next operation must perform.
type BackupKind int

const (
	// NeedsFull means no base snapshot exists for today.
	NeedsFull BackupKind = iota
	// NeedsIncremental means today's base exists and the next snapshot
	// chains off it.
	NeedsIncremental
)

// String returns a human readable name for logging.
func (k BackupKind) String() string {
	if k == NeedsFull {
		return "full"
	}
	return "incremental"
}

// BackupState is the transient state derived from the backup root for one
// calendar day. It is recomputed from the filesystem on every invocation and
// never persisted.
type BackupState struct {
	Kind BackupKind

	// Target is the directory the next backup operation must write to.
	Target string

	// BaseDir is today's base snapshot directory; empty when Kind is
	// NeedsFull.
	BaseDir string

	// ChainFrom is the newest existing snapshot directory of today's
	// lineage, which an incremental backup uses as its basedir. Empty when
	// Kind is NeedsFull.
	ChainFrom string

	// FirstIncremental is set when the next incremental would be the
	// lineage's first (sequence 1). Informational only.
	FirstIncremental bool
}

// PrepareStep is one external-tool invocation in a prepare sequence.
// TargetDir is always the lineage base; IncrementalDir is empty for the step
// that prepares the base itself.
type PrepareStep struct {
	TargetDir      string
	IncrementalDir string
	// Seq is 0 for the base step, otherwise the incremental's sequence.
	Seq int
	// ApplyLogOnly is set on every step except the terminal one. The final
	// step completes log application and makes the lineage restorable.
	ApplyLogOnly bool
}

// Describe identifies the step in logs and failure messages.
func (s PrepareStep) Describe() string {
	if s.Seq == 0 {
		return "base"
	}
	return FormatIncrName(s.Seq)
}

// RetentionPolicy configures which historical base snapshots rotation keeps.
type RetentionPolicy struct {
	// WeekStart is the weekday a retention week begins on.
	WeekStart time.Weekday
	// YearlyAnchorDay is the day of year (1-366) yearly retention targets.
	YearlyAnchorDay int

	WeeklyKeep  int
	MonthlyKeep int
	YearlyKeep  int
}

// RotationPlan partitions base snapshot dates into those to retain and those
// eligible for deletion. Both slices are sorted ascending.
type RotationPlan struct {
	Retain []time.Time
	Delete []time.Time
}

// ToolResult carries the captured combined output of one external-tool run.
// The output is logged, never parsed beyond the process exit status.
type ToolResult struct {
	Output string
}

// FileInfo represents file information.
type FileInfo interface {
	Name() string
	IsDir() bool
}

// DirEntry represents a directory entry.
type DirEntry interface {
	Name() string
	IsDir() bool
}
