package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcomandos(t *testing.T) {
	root := rootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "seed"}, names)

	flag := root.PersistentFlags().Lookup("db")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("skip-migrate"))
}
