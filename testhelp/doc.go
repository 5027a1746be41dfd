// Package testhelp provides assertions for tests that compare numbers,
// strings, files, folders, archives and decoded documents.
//
// Every Assert function takes a testify assert.TestingT, reports through
// Errorf and returns whether the assertion held, so it composes with
// assert and require:
//
//	testhelp.AssertFoldersEqual(t, outDir, "testdata/golden")
//	require.True(t, testhelp.AssertZipEqual(t, got, want))
package testhelp
