package cmd

import (
	"bytes"
	"testing"

	"github.com/biomed-study/biodb/internal/iofs"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "biodb", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
}

func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), "v1.2.3")
			assert.Contains(t, buf.String(), "abc123")
		})
	}
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	names := []string{
		"run", "reset", "seed", "patients", "visits", "hypertensive",
		"relocate-sample", "delete-patient", "status", "optimize",
	}
	for _, name := range names {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
		assert.NotEmpty(t, sub.Short, name)
		assert.NotNil(t, sub.RunE, name)
	}
}

func TestGetRootCmd_PersistentFlags(t *testing.T) {
	cmd := getRootCmd()

	for _, name := range []string{"db", "format"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue, name)
	}
}

func TestFlagOptions(t *testing.T) {
	cmd := getRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--db", "flag.db"}))

	c := config.New()
	c.Update(flagOptions(cmd))
	assert.Equal(t, "flag.db", c.Database.Path)
	assert.Equal(t, "tuple", c.Report.Format, "unset flags keep values")
}

func TestInitEnvVars(t *testing.T) {
	t.Setenv("BIODB_DATABASE_PATH", "env.db")
	t.Setenv("BIODB_STUDY_SYSTOLIC_THRESHOLD", "155")
	t.Setenv("BIODB_REPORT_FORMAT", "pretty")

	v := viper.New()
	initEnvVars(v)

	var res config.Config
	require.NoError(t, v.Unmarshal(&res))
	assert.Equal(t, "env.db", res.Database.Path)
	assert.Equal(t, 155, res.Study.SystolicThreshold)
	assert.Equal(t, "pretty", res.Report.Format)
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	c, err := initConfig(home)
	require.Error(t, err, "config file is missing")
	assert.Nil(t, c)

	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureConfigFile(home))

	c, err = initConfig(home)
	require.NoError(t, err)
	assert.Equal(t, config.New().Database, c.Database)
	assert.Equal(t, config.New().Study, c.Study)
}
