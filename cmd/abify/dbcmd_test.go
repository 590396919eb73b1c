package main_test

import (
	"bytes"
	"path/filepath"
	"testing"

	abify "github.com/NethermindEth/abify/cmd/abify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderYAML = `
- typeClass: struct
  id: "11"
  typeName: Order
  definingContractName: Pool
  memberTypes:
    - name: side
      type: {typeClass: enum, id: "10", typeName: Side, definingContractName: Pool}
    - name: amount
      type: {typeClass: uint, bits: 256}
`

func executeDB(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)

	cmd := abify.NewCmd(new(abify.Config))
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"db"}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDBCmd(t *testing.T) {
	t.Run("import and info", func(t *testing.T) {
		dir := t.TempDir()
		dbPath := filepath.Join(dir, "db")

		out, err := executeDB(t, "import", "--db-path", dbPath, writeFile(t, dir, "side.yaml", registryYAML))
		require.NoError(t, err)
		assert.Equal(t, "Stored 1 definitions\n", out)

		// Order refers to Side, which is only in the database by now.
		out, err = executeDB(t, "import", "--db-path", dbPath, writeFile(t, dir, "order.yaml", orderYAML))
		require.NoError(t, err)
		assert.Equal(t, "Stored 1 definitions\n", out)

		out, err = executeDB(t, "info", "--db-path", dbPath)
		require.NoError(t, err)
		assert.Contains(t, out, "enum Pool.Side")
		assert.Contains(t, out, "3 options")
		assert.Contains(t, out, "struct Pool.Order")
		assert.Contains(t, out, "2 members")
	})

	t.Run("import rejects unknown references", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeDB(t, "import", "--db-path", filepath.Join(dir, "db"), writeFile(t, dir, "order.yaml", orderYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown user-defined type")
	})

	t.Run("db path is required", func(t *testing.T) {
		_, err := executeDB(t, "info")
		require.EqualError(t, err, "--db-path is required")
	})
}
