package cmd

import (
	"io/ioutil"
	"os"

	"quill/report"

	"github.com/pelletier/go-toml"
)

// PipelineProfile represents the configuration of one lowering run.
type PipelineProfile struct {
	// Name identifies the profile.
	Name string

	// QIRProfile names the QIR profile targeted by the run.
	QIRProfile string

	// OutputPath is the path the emitted IR is written to.  An empty path
	// writes to standard output.
	OutputPath string
}

// tomlProfile represents a pipeline profile as it is encoded in TOML.
type tomlProfile struct {
	Name       string `toml:"name"`
	QIRProfile string `toml:"qir-profile"`
	OutputPath string `toml:"output"`
}

// defaultProfile is used when no profile file is given.
func defaultProfile() *PipelineProfile {
	return &PipelineProfile{
		Name:       "default",
		QIRProfile: "base",
	}
}

// LoadProfile loads and validates a pipeline profile.  This function
// returns the deserialized profile and a success boolean; failures are
// reported through the global reporter.
func LoadProfile(path string) (*PipelineProfile, bool) {
	f, err := os.Open(path)
	if err != nil {
		report.ReportError("Profile Error", err)
		return nil, false
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		report.ReportError("Profile Error", err)
		return nil, false
	}

	tomlProf := &tomlProfile{}
	if err := toml.Unmarshal(buff, tomlProf); err != nil {
		report.ReportError("Profile Error", err)
		return nil, false
	}

	prof := defaultProfile()

	if tomlProf.Name != "" {
		prof.Name = tomlProf.Name
	}

	if tomlProf.QIRProfile != "" {
		prof.QIRProfile = tomlProf.QIRProfile
	}

	prof.OutputPath = tomlProf.OutputPath
	return prof, true
}
