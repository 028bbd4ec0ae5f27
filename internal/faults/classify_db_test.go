package faults_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/types"
)

// Drives a real driver error through Classify: inserting the same primary
// key twice must come out as a safe db error mentioning the constraint.
func TestClassifyDuplicateInsertIsSafeDBError(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "classify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	job := &types.JobApplication{
		JobID:             101,
		Title:             "Backend Engineer",
		CompanyName:       "Initech",
		WorkArrangement:   types.WorkHybrid,
		JobType:           types.JobFullTime,
		DescriptionText:   "Build and run backend services.",
		SalaryCurrency:    types.CurrencyCAD,
		AppMethod:         types.MethodLinkedin,
		ApplicationLink:   "https://www.linkedin.com/jobs/view/101",
		ApplicationStatus: types.StatusNotApplied,
	}
	require.NoError(t, store.Insert(ctx, job))

	err = store.Insert(ctx, job)
	require.Error(t, err)

	e := faults.Classify(err, faults.Context{Location: "store:insert"})
	assert.Equal(t, faults.KindDB, e.Kind)
	assert.Equal(t, "DatabaseError", e.Name)
	assert.True(t, e.Safe)
	assert.Contains(t, strings.ToLower(e.Message), "constraint")
	assert.Equal(t, "store:insert", e.Location)
}
