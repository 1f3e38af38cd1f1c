package credential_test

import (
	"fmt"
	"testing"

	"github.com/rafael-ulguim1/askgemini/pkg/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvWinsOverConfig(t *testing.T) {
	t.Setenv(credential.EnvKey, "key-from-env")
	t.Setenv(credential.LegacyEnvKey, "")

	cred, err := credential.Load("key-from-config")
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cred.Key())
}

func TestLoad_LegacyEnvFallback(t *testing.T) {
	t.Setenv(credential.EnvKey, "")
	t.Setenv(credential.LegacyEnvKey, "key-from-legacy-env")

	cred, err := credential.Load("")
	require.NoError(t, err)
	assert.Equal(t, "key-from-legacy-env", cred.Key())
}

func TestLoad_ConfigFallback(t *testing.T) {
	t.Setenv(credential.EnvKey, "")
	t.Setenv(credential.LegacyEnvKey, "")

	cred, err := credential.Load("key-from-config")
	require.NoError(t, err)
	assert.Equal(t, "key-from-config", cred.Key())
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv(credential.EnvKey, "")
	t.Setenv(credential.LegacyEnvKey, "")

	cred, err := credential.Load("")
	require.Error(t, err)

	var me *credential.MissingError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, err.Error(), credential.EnvKey)
	assert.True(t, cred.IsZero())
}

func TestCredential_RedactedFormatting(t *testing.T) {
	cred := credential.New("sk-very-secret")

	for _, formatted := range []string{
		cred.String(),
		fmt.Sprintf("%v", cred),
		fmt.Sprintf("%s", cred),
		fmt.Sprintf("%#v", cred),
		fmt.Sprintf("%+v", cred),
	} {
		assert.NotContains(t, formatted, "sk-very-secret")
	}

	assert.Equal(t, "(redacted)", cred.String())
	assert.Equal(t, "(unset)", credential.Credential{}.String())
}

func TestCredential_KeyRoundTrip(t *testing.T) {
	cred := credential.New("abc")
	assert.Equal(t, "abc", cred.Key())
	assert.False(t, cred.IsZero())
}
