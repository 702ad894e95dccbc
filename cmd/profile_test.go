package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"quill/llc"
	"quill/lower"
	"quill/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir, err := ioutil.TempDir("", "quill-profile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "quill.toml")
	content := []byte("name = \"hardware\"\nqir-profile = \"adaptive\"\noutput = \"kernel.ll\"\n")
	require.NoError(t, ioutil.WriteFile(path, content, 0644))

	prof, ok := LoadProfile(path)
	require.True(t, ok)
	assert.Equal(t, "hardware", prof.Name)
	assert.Equal(t, "adaptive", prof.QIRProfile)
	assert.Equal(t, "kernel.ll", prof.OutputPath)
}

func TestLoadProfileDefaults(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	dir, err := ioutil.TempDir("", "quill-profile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "quill.toml")
	require.NoError(t, ioutil.WriteFile(path, []byte("name = \"minimal\"\n"), 0644))

	prof, ok := LoadProfile(path)
	require.True(t, ok)
	assert.Equal(t, "minimal", prof.Name)
	assert.Equal(t, "base", prof.QIRProfile)
	assert.Empty(t, prof.OutputPath)
}

func TestLoadProfileMissingFile(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	_, ok := LoadProfile(filepath.Join("nowhere", "quill.toml"))
	assert.False(t, ok)
}

func TestDemoKernelLowersEndToEnd(t *testing.T) {
	m := buildDemoKernel()

	require.NoError(t, lower.ConvertToQIR(m))
	require.False(t, m.Failed())

	llmod, err := llc.EmitModule(m)
	require.NoError(t, err)

	text := llmod.String()
	assert.Contains(t, text, "define void @demo_kernel()")
	assert.Contains(t, text, "__quantum__qis__h")
	assert.Contains(t, text, "__quantum__qis__cnot")
	assert.Contains(t, text, "__quantum__qis__rz")
	assert.Contains(t, text, "__quantum__qis__mz")
}
