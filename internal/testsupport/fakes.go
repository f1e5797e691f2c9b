package testsupport

import (
	"context"
	"fmt"
	"sync"

	"scantidy/internal/xnat"
)

// FakeRepository serves canned experiment and scan listings.
type FakeRepository struct {
	Experiments []xnat.Experiment
	Scans       map[string][]xnat.ScanRecord

	ExperimentsErr error
	ScansErr       error
}

var _ xnat.Repository = (*FakeRepository)(nil)

// ListExperiments implements xnat.Repository.
func (f *FakeRepository) ListExperiments(_ context.Context, _, _ string) ([]xnat.Experiment, error) {
	if f.ExperimentsErr != nil {
		return nil, f.ExperimentsErr
	}
	return f.Experiments, nil
}

// ListScans implements xnat.Repository.
func (f *FakeRepository) ListScans(_ context.Context, _, _, experiment string) ([]xnat.ScanRecord, error) {
	if f.ScansErr != nil {
		return nil, f.ScansErr
	}
	return f.Scans[experiment], nil
}

// WriteCall records one SetScanField invocation.
type WriteCall struct {
	Ref   xnat.ScanRef
	Field string
	Value string
}

// FakeWriter records field writes and serves configurable current values.
type FakeWriter struct {
	mu sync.Mutex

	// Current maps "scanID/field" to the value reads return. Missing keys
	// read as empty.
	Current map[string]string
	// ReadErr and WriteErr, when set for a scan ID, fail the operation.
	ReadErr  map[string]error
	WriteErr map[string]error

	Writes []WriteCall
}

var _ xnat.FieldWriter = (*FakeWriter)(nil)

// GetScanField implements xnat.FieldWriter.
func (f *FakeWriter) GetScanField(_ context.Context, ref xnat.ScanRef, field string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ReadErr[ref.Scan]; err != nil {
		return "", err
	}
	return f.Current[fieldKey(ref.Scan, field)], nil
}

// SetScanField implements xnat.FieldWriter.
func (f *FakeWriter) SetScanField(_ context.Context, ref xnat.ScanRef, field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.WriteErr[ref.Scan]; err != nil {
		return err
	}
	if f.Current == nil {
		f.Current = make(map[string]string)
	}
	f.Current[fieldKey(ref.Scan, field)] = value
	f.Writes = append(f.Writes, WriteCall{Ref: ref, Field: field, Value: value})
	return nil
}

// WroteField reports whether a write for the scan/field pair was recorded.
func (f *FakeWriter) WroteField(scanID, field string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, call := range f.Writes {
		if call.Ref.Scan == scanID && call.Field == field {
			return true
		}
	}
	return false
}

func fieldKey(scanID, field string) string {
	return fmt.Sprintf("%s/%s", scanID, field)
}
