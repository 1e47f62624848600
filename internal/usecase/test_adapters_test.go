package usecase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

type testFileSystem struct{}

func newTestFileSystem() *testFileSystem {
	return &testFileSystem{}
}

func (a *testFileSystem) ReadDir(ctx context.Context, path string) ([]DirEntry, error) {
	_ = ctx
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &dirEntryWrapperTest{entry})
	}
	return result, nil
}

func (a *testFileSystem) Stat(ctx context.Context, path string) (FileInfo, error) {
	_ = ctx
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileInfoWrapperTest{info}, nil
}

func (a *testFileSystem) CreateDir(ctx context.Context, path string, perm int) error {
	_ = ctx
	mode := fs.FileMode(0o755)
	if perm >= 0 && perm <= 0o777 {
		mode = fs.FileMode(perm) // #nosec G115 -- validated range.
	}
	return os.MkdirAll(path, mode)
}

func (a *testFileSystem) RemoveAll(ctx context.Context, path string) error {
	_ = ctx
	return os.RemoveAll(path)
}

func (a *testFileSystem) Join(elements ...string) string {
	return filepath.Join(elements...)
}

func (a *testFileSystem) Base(path string) string {
	return filepath.Base(path)
}

func (a *testFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

func (a *testFileSystem) IsPermission(err error) bool {
	return os.IsPermission(err)
}

type fileInfoWrapperTest struct {
	fs.FileInfo
}

func (w *fileInfoWrapperTest) Name() string { return w.FileInfo.Name() }
func (w *fileInfoWrapperTest) IsDir() bool  { return w.FileInfo.IsDir() }

type dirEntryWrapperTest struct {
	fs.DirEntry
}

func (w *dirEntryWrapperTest) Name() string { return w.DirEntry.Name() }
func (w *dirEntryWrapperTest) IsDir() bool  { return w.DirEntry.IsDir() }

// toolCall records one invocation of the fake backup tool.
type toolCall struct {
	Op             string
	TargetDir      string
	BaseDir        string
	IncrementalDir string
	ApplyLogOnly   bool
	DataDir        string
}

// fakeTool implements BackupToolPort, recording calls and optionally failing
// a configured call index.
type fakeTool struct {
	Calls  []toolCall
	FailAt int // 1-based call index that fails; 0 disables
	Output string
}

func newFakeTool() *fakeTool {
	return &fakeTool{FailAt: 0}
}

func (f *fakeTool) record(call toolCall) (ToolResult, error) {
	f.Calls = append(f.Calls, call)
	if f.FailAt > 0 && len(f.Calls) == f.FailAt {
		return ToolResult{Output: f.Output}, errors.New("tool exited with status 1")
	}
	return ToolResult{Output: f.Output}, nil
}

func (f *fakeTool) FullBackup(ctx context.Context, targetDir string) (ToolResult, error) {
	_ = ctx
	return f.record(toolCall{Op: "full", TargetDir: targetDir})
}

func (f *fakeTool) IncrementalBackup(ctx context.Context, targetDir, baseDir string) (ToolResult, error) {
	_ = ctx
	return f.record(toolCall{Op: "incremental", TargetDir: targetDir, BaseDir: baseDir})
}

func (f *fakeTool) Prepare(ctx context.Context, targetDir, incrementalDir string, applyLogOnly bool) (ToolResult, error) {
	_ = ctx
	return f.record(toolCall{
		Op:             "prepare",
		TargetDir:      targetDir,
		IncrementalDir: incrementalDir,
		ApplyLogOnly:   applyLogOnly,
	})
}

func (f *fakeTool) CopyBack(ctx context.Context, backupDir, dataDir string) (ToolResult, error) {
	_ = ctx
	return f.record(toolCall{Op: "copyback", TargetDir: backupDir, DataDir: dataDir})
}

// cancelingTool fails every call after canceling its context, imitating a
// subprocess killed by signal-driven cancellation.
type cancelingTool struct {
	fakeTool
	cancel context.CancelFunc
}

func (f *cancelingTool) fail() (ToolResult, error) {
	f.cancel()
	return ToolResult{}, errors.New("signal: killed")
}

func (f *cancelingTool) FullBackup(ctx context.Context, targetDir string) (ToolResult, error) {
	_ = ctx
	_ = targetDir
	return f.fail()
}

func (f *cancelingTool) IncrementalBackup(ctx context.Context, targetDir, baseDir string) (ToolResult, error) {
	_ = ctx
	_ = targetDir
	_ = baseDir
	return f.fail()
}

func (f *cancelingTool) Prepare(ctx context.Context, targetDir, incrementalDir string, applyLogOnly bool) (ToolResult, error) {
	_ = ctx
	_ = targetDir
	_ = incrementalDir
	_ = applyLogOnly
	return f.fail()
}

func (f *cancelingTool) CopyBack(ctx context.Context, backupDir, dataDir string) (ToolResult, error) {
	_ = ctx
	_ = backupDir
	_ = dataDir
	return f.fail()
}

// fakeNotifier implements NotifierPort, recording sent notifications.
type fakeNotifier struct {
	Subjects []string
	Err      error
}

func (f *fakeNotifier) Send(ctx context.Context, subject, body string) error {
	_ = ctx
	_ = body
	if f.Err != nil {
		return f.Err
	}
	f.Subjects = append(f.Subjects, subject)
	return nil
}

// fakeDisk implements DiskPort with a fixed free-space answer.
type fakeDisk struct {
	Free uint64
	Err  error
}

func (f *fakeDisk) FreeBytes(ctx context.Context, path string) (uint64, error) {
	_ = ctx
	_ = path
	if f.Err != nil {
		return 0, f.Err
	}
	return f.Free, nil
}

func newTestDependencies() *Dependencies {
	return &Dependencies{
		FileSystem: newTestFileSystem(),
		Tool:       newFakeTool(),
	}
}
