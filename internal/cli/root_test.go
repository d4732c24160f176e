package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}

	return fsys
}

func TestRootCmd(t *testing.T) {
	cmd := RootCmd()

	assert.Equal(t, "is-container", cmd.Use)

	logFlag := cmd.PersistentFlags().Lookup("log")
	assert.NotNil(t, logFlag)
	assert.Equal(t, "l", logFlag.Shorthand)

	debugFlag := cmd.PersistentFlags().Lookup("debug")
	assert.NotNil(t, debugFlag)
	assert.Equal(t, "d", debugFlag.Shorthand)

	printFlag := cmd.Flag("print")
	assert.NotNil(t, printFlag)
	assert.Equal(t, "p", printFlag.Shorthand)
}

func TestRootCmdExecute(t *testing.T) {
	scenarios := map[string]struct {
		files  map[string]string
		err    error
		output string
	}{
		"test in container": {
			files:  map[string]string{"/.dockerenv": ""},
			err:    nil,
			output: "true\n",
		},
		"test cgroup in container": {
			files:  map[string]string{"/proc/1/cgroup": "11:pids:/docker/abc123\n"},
			err:    nil,
			output: "true\n",
		},
		"test not in container": {
			files:  map[string]string{"/proc/1/cgroup": "0::/init.scope\n"},
			err:    ErrNotContainer,
			output: "false\n",
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			var out bytes.Buffer

			cmd := newRootCmd(memFs(t, data.files))
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"--print"})

			err := cmd.Execute()
			if data.err != nil {
				assert.ErrorIs(t, err, data.err)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, data.output, out.String())
		})
	}
}

func TestRootCmdSilentByDefault(t *testing.T) {
	var out bytes.Buffer

	cmd := newRootCmd(memFs(t, nil))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	assert.ErrorIs(t, cmd.Execute(), ErrNotContainer)
	assert.Empty(t, out.String())
}

func TestRootCmdDebugLogFile(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "is-container.log")

	cmd := newRootCmd(memFs(t, map[string]string{"/run/.containerenv": ""}))
	cmd.SetArgs([]string{"--debug", "--log", logfile})

	require.NoError(t, cmd.Execute())

	content, err := afero.ReadFile(afero.NewOsFs(), logfile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "probe=containerenv")
}

func TestExplainCmdJSON(t *testing.T) {
	var out bytes.Buffer

	cmd := newRootCmd(memFs(t, map[string]string{
		"/proc/1/mountinfo": "123 1 0:1 /docker/xyz / rw shared:1 - overlay none rw\n",
	}))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"explain"})

	require.NoError(t, cmd.Execute())

	var got struct {
		Container bool `json:"container"`
		Probes    []struct {
			Name     string `json:"name"`
			Detected bool   `json:"detected"`
		} `json:"probes"`
		Host struct {
			CgroupMode string `json:"cgroupMode"`
		} `json:"host"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	assert.True(t, got.Container)
	require.Len(t, got.Probes, 4)
	assert.Equal(t, "mountinfo", got.Probes[2].Name)
	assert.True(t, got.Probes[2].Detected)
	assert.NotEmpty(t, got.Host.CgroupMode)
}

func TestExplainCmdText(t *testing.T) {
	var out bytes.Buffer

	cmd := newRootCmd(memFs(t, nil))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"explain", "--format", "text"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "PROBE")
	assert.Contains(t, out.String(), "/proc/1/cgroup")
	assert.Contains(t, out.String(), "container:      false")
}

func TestExplainCmdUnsupportedFormat(t *testing.T) {
	cmd := newRootCmd(memFs(t, nil))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"explain", "--format", "yaml"})

	assert.ErrorContains(t, cmd.Execute(), "unsupported format: yaml")
}
