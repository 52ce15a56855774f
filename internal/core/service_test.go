package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/JonMunkholm/TableConverter/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stageEvent struct {
	stage   Stage
	outcome string
}

type fileEvent struct {
	format  string
	outcome string
}

// recordingObserver captures everything the service reports.
type recordingObserver struct {
	mu     sync.Mutex
	stages []stageEvent
	files  []fileEvent
}

func (o *recordingObserver) ObserveStage(stage Stage, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, stageEvent{stage, outcome})
}

func (o *recordingObserver) ObserveFile(format, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, fileEvent{format, outcome})
}

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxFileSize:   1024,
			MaxFiles:      5,
			MaxConcurrent: 2,
			MaxWaitTime:   time.Second,
		},
		Preview: config.PreviewConfig{Rows: 2},
	}
}

func newTestService(t *testing.T) (*Service, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	svc, err := NewService(testConfig(), obs)
	require.NoError(t, err)
	return svc, obs
}

func TestNewService_NilConfig(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)

	svc, err := NewService(testConfig(), nil)
	require.NoError(t, err)
	_, err = svc.ProcessFiles(context.Background(), []FileInput{{Name: "a.csv", Data: []byte("a\n1\n")}})
	assert.NoError(t, err, "a nil observer must not panic")
}

func TestService_ProcessFiles_IndependentResults(t *testing.T) {
	svc, obs := newTestService(t)

	results, err := svc.ProcessFiles(context.Background(), []FileInput{
		{Name: "good.csv", Data: []byte("a,b\n1,\n1,2\n3,\n"), Options: TransformOptions{
			FillMissingWithMean: true,
			SelectedColumns:     []string{"b"},
		}},
		{Name: "bad.csv", Data: []byte("a\n1\n"), Options: TransformOptions{
			SelectedColumns: []string{"missing"},
		}},
		{Name: "notes.txt", Data: []byte("hello")},
		{Name: "other.csv", Data: []byte("x\n5\n")},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	good := results[0]
	assert.True(t, good.OK())
	assert.NotEmpty(t, good.ID)
	assert.Equal(t, "good.csv", good.FileName)
	assert.Equal(t, [][]string{{"2"}, {"2"}, {"2"}}, cells(good.Table))
	assert.Equal(t, 2, good.Stages[0].Preview.NumRows(), "preview rows come from config")

	bad := results[1]
	assert.False(t, bad.OK())
	assert.Equal(t, StageSelectColumns, bad.Err.Stage)
	assert.Len(t, bad.Stages, 1, "parse preview is kept")

	unsupported := results[2]
	assert.False(t, unsupported.OK())
	assert.Equal(t, StageParse, unsupported.Err.Stage)
	assert.Equal(t, "FILE006", MapError(unsupported.Err).Code)

	assert.True(t, results[3].OK())
	assert.NotEqual(t, results[0].ID, results[3].ID)

	assert.Equal(t, []fileEvent{
		{"csv", OutcomeOK},
		{"csv", OutcomeError},
		{"unknown", OutcomeError},
		{"csv", OutcomeOK},
	}, obs.files)
	assert.Contains(t, obs.stages, stageEvent{StageSelectColumns, OutcomeError})
	assert.Equal(t, 0, svc.UploadLimiterStatus().Active, "slot released")
}

func TestService_ProcessFiles_FileTooLarge(t *testing.T) {
	svc, _ := newTestService(t)
	big := make([]byte, 2048)

	results, err := svc.ProcessFiles(context.Background(), []FileInput{{Name: "big.csv", Data: big}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, StageParse, results[0].Err.Stage)
	assert.Equal(t, "FILE001", MapError(results[0].Err).Code)
}

func TestService_ProcessFiles_WarningOutcome(t *testing.T) {
	svc, obs := newTestService(t)

	results, err := svc.ProcessFiles(context.Background(), []FileInput{
		{Name: "w.csv", Data: []byte("a,b\n1,\n"), Options: TransformOptions{FillMissingWithMean: true}},
	})
	require.NoError(t, err)

	assert.True(t, results[0].OK())
	assert.Len(t, results[0].Warnings, 1)
	assert.Equal(t, []fileEvent{{"csv", OutcomeWarning}}, obs.files)
	assert.Contains(t, obs.stages, stageEvent{StageFillMissing, OutcomeWarning})
}

func TestService_ProcessFiles_Cancelled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProcessFiles(ctx, []FileInput{{Name: "a.csv", Data: []byte("a\n1\n")}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "UPL002", MapError(err).Code)
}

func TestService_ProcessFiles_Busy(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxConcurrent = 1
	cfg.Upload.MaxWaitTime = 50 * time.Millisecond
	svc, err := NewService(cfg, nil)
	require.NoError(t, err)

	require.NoError(t, svc.limiter.Acquire(context.Background()))
	defer svc.limiter.Release()

	_, err = svc.ProcessFiles(context.Background(), []FileInput{{Name: "a.csv", Data: []byte("a\n1\n")}})
	assert.ErrorIs(t, err, ErrTooManyUploads)
}

func TestService_ExportFile(t *testing.T) {
	svc, _ := newTestService(t)

	art, res, err := svc.ExportFile(context.Background(), FileInput{
		Name: "data.csv",
		Data: []byte("a,b\n1,\n1,2\n3,\n"),
		Options: TransformOptions{
			RemoveDuplicates:    true,
			FillMissingWithMean: true,
			SelectedColumns:     []string{"b"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, art)
	assert.Equal(t, "b\n2\n2\n2\n", string(art.Data))
	assert.Equal(t, StageExport, res.Stages[len(res.Stages)-1].Stage)

	art, res, err = svc.ExportFile(context.Background(), FileInput{
		Name:    "data.csv",
		Data:    []byte("a\n1\n"),
		Options: TransformOptions{SelectedColumns: []string{"nope"}},
	})
	assert.Nil(t, art)
	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageSelectColumns, se.Stage)
	assert.Equal(t, StageSelectColumns, res.Err.Stage)
}

func TestService_ChartFile(t *testing.T) {
	svc, _ := newTestService(t)
	f := FileInput{Name: "data.csv", Data: []byte("name,a,b\nx,1,2\ny,3,4\n")}

	chart, err := svc.ChartFile(context.Background(), f, nil)
	require.NoError(t, err)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "a", chart.Series[0].Column)

	chart, err = svc.ChartFile(context.Background(), f, []string{"b"})
	require.NoError(t, err)
	require.Len(t, chart.Series, 1)
	assert.Equal(t, 4.0, *chart.Series[0].Values[1])

	f.Options.SelectedColumns = []string{"name"}
	_, err = svc.ChartFile(context.Background(), f, nil)
	assert.ErrorIs(t, err, ErrNoNumericColumns)

	_, err = svc.ChartFile(context.Background(), FileInput{Name: "e.csv"}, nil)
	var se *StageError
	assert.ErrorAs(t, err, &se)
}

func TestService_WaitForUploads(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, svc.WaitForUploads(ctx))
}
