package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetImportCmd_Exists verifies getImportCmd returns
// a valid command.
func TestGetImportCmd_Exists(t *testing.T) {
	cmd := getImportCmd()
	require.NotNil(t, cmd, "Import command should exist")
	assert.Equal(t, "import", cmd.Name(),
		"Command name should be import")
}

// TestGetImportCmd_Descriptions verifies short and long descriptions.
func TestGetImportCmd_Descriptions(t *testing.T) {
	cmd := getImportCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "APIS",
		"Short description should mention the legacy system")

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "PERSON_QUERY",
		"Long description should explain the argument")
	assert.Contains(t, cmd.Long, "idempotent",
		"Long description should mention idempotency")
}

// TestGetImportCmd_RequiresArgument verifies exactly one
// positional argument is accepted.
func TestGetImportCmd_RequiresArgument(t *testing.T) {
	cmd := getImportCmd()

	require.NotNil(t, cmd.Args)
	assert.Error(t, cmd.Args(cmd, []string{}),
		"Should reject missing query")
	assert.Error(t, cmd.Args(cmd, []string{"42", "43"}),
		"Should reject extra arguments")
	assert.NoError(t, cmd.Args(cmd, []string{"42"}),
		"Should accept a single query")
}

// TestGetImportCmd_Flags verifies the import flags exist with
// sensible defaults.
func TestGetImportCmd_Flags(t *testing.T) {
	cmd := getImportCmd()
	flags := cmd.Flags()

	tests := []struct {
		msg  string
		name string
		def  string
	}{
		{"voc file flag", "voc-file", ""},
		{"labels file flag", "labels-file", ""},
		{"log file flag", "log-file", ""},
		{"log level flag", "log-level", ""},
		{"fail fast flag", "fail-fast", "false"},
	}

	for _, v := range tests {
		f := flags.Lookup(v.name)
		require.NotNil(t, f, v.msg)
		assert.Equal(t, v.def, f.DefValue, v.msg)
	}
}

// TestGetImportCmd_HelpText verifies help text content.
func TestGetImportCmd_HelpText(t *testing.T) {
	cmd := getImportCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "--voc-file",
		"Help should mention --voc-file flag")
	assert.Contains(t, helpText, "--fail-fast",
		"Help should mention --fail-fast flag")
	assert.Contains(t, helpText, "Examples:",
		"Help should include examples")
	assert.Contains(t, helpText, `minedb import 42`,
		"Should show numeric id example")
}
