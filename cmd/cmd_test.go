//
// Copyright (c) 2025 Chakib Ben Ziane <contact@blob42.xyz> and [`marksync` contributors]
// (https://github.com/blob42/marksync/graphs/contributors).
//
// All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// This file is part of marksync.
//
// marksync is free software: you can redistribute it and/or modify it under the terms of
// the GNU Affero General Public License as published by the Free Software Foundation,
// either version 3 of the License, or (at your option) any later version.
//
// marksync is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
// PURPOSE.  See the GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License along with
// marksync.  If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blob42/marksync/internal/database"
	"github.com/blob42/marksync/internal/store"
	"github.com/blob42/marksync/internal/store/redis"
	"github.com/blob42/marksync/pkg/config"
	"github.com/blob42/marksync/pkg/parsing"
	bksync "github.com/blob42/marksync/pkg/sync"
	"github.com/blob42/marksync/pkg/tree"
	"github.com/blob42/marksync/pkg/watch"
)

const fixture = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<DL><p>
    <DT><A HREF="https://go.dev/" ADD_DATE="1700000000">Go</A>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://sqlite.org/" ADD_DATE="1700000100">SQLite</A>
        <DT><H3>Tools</H3>
        <DL><p>
            <DT><A HREF="https://redis.io/" ADD_DATE="1700000200">Redis</A>
        </DL><p>
    </DL><p>
</DL>
`

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnv struct {
	dir     string
	conf    string
	db      string
	marks   string
	backend string
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// newEnv isolates the package level configuration of a test
func newEnv(t *testing.T) *testEnv {
	t.Helper()

	storeConf, dbConf, redisConf := *store.Conf, *database.Conf, *redis.Conf
	syncConf, watchConf := *bksync.Conf, *watch.Conf
	t.Cleanup(func() {
		*store.Conf, *database.Conf, *redis.Conf = storeConf, dbConf, redisConf
		*bksync.Conf, *watch.Conf = syncConf, watchConf
		require.NoError(t, config.Get(config.GlobalConfigName).Set(store.GlobalBackendOpt, ""))
	})

	dir := t.TempDir()
	env := &testEnv{
		dir:   dir,
		conf:  filepath.Join(dir, "config.toml"),
		db:    filepath.Join(dir, "marksync.sqlite"),
		marks: filepath.Join(dir, "bookmarks.html"),
	}
	require.NoError(t, os.WriteFile(env.marks, []byte(fixture), 0o644))
	return env
}

func (env *testEnv) args(args ...string) []string {
	full := []string{"marksync", "--config", env.conf, "--db", env.db}
	if env.backend != "" {
		full = append(full, "--store", env.backend)
	}
	return append(full, args...)
}

func (env *testEnv) runWith(ctx context.Context, w io.Writer, args ...string) error {
	app := NewApp()
	app.Writer = w
	app.ErrWriter = io.Discard
	return app.Run(ctx, env.args(args...))
}

func (env *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := env.runWith(context.Background(), &buf, args...)
	return buf.String(), err
}

func (env *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res, err := env.run(t, args...)
	require.NoError(t, err, "marksync %s", strings.Join(args, " "))
	return res
}

func TestImportAndList(t *testing.T) {
	env := newEnv(t)

	res := env.mustRun(t, "import", env.marks)
	assert.Contains(t, res, "3 added, 0 updated, 0 deleted (3 new, 0 existing)")

	res = env.mustRun(t, "list")
	for _, url := range []string{"https://go.dev/", "https://sqlite.org/", "https://redis.io/"} {
		assert.Contains(t, res, url)
	}
	assert.Contains(t, res, "/Work/Tools/")

	res = env.mustRun(t, "list", "--count", "sql")
	assert.Equal(t, "1\n", res)

	// second import is a no-op
	res = env.mustRun(t, "import", env.marks)
	assert.Contains(t, res, "0 added, 0 updated, 0 deleted (3 new, 3 existing)")

	// the config file was created on first run
	exists, err := config.ConfigExists(env.conf)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestImportDeletesAndUpdates(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "import", env.marks)

	edited := strings.Replace(fixture, ">Go<", ">The Go Language<", 1)
	edited = strings.Replace(edited, `<DT><A HREF="https://redis.io/" ADD_DATE="1700000200">Redis</A>`, "", 1)
	require.NoError(t, os.WriteFile(env.marks, []byte(edited), 0o644))

	res := env.mustRun(t, "plan", env.marks)
	assert.Contains(t, res, "~ https://go.dev/ [title]")
	assert.Contains(t, res, "- https://redis.io/")
	assert.Contains(t, res, "0 added, 1 updated, 1 deleted")

	res = env.mustRun(t, "import", "--dry-run", env.marks)
	assert.Contains(t, res, "dry run")
	assert.Equal(t, "3\n", env.mustRun(t, "list", "--count"))

	res = env.mustRun(t, "import", "--compare", "url", env.marks)
	assert.Contains(t, res, "0 added, 0 updated, 1 deleted")

	res = env.mustRun(t, "import", "--tx", "--compare", "title,icon", env.marks)
	assert.Contains(t, res, "0 added, 1 updated, 0 deleted")
	assert.Contains(t, env.mustRun(t, "list"), "The Go Language")
}

func TestImportErrors(t *testing.T) {
	env := newEnv(t)

	_, err := env.run(t, "import")
	assert.ErrorContains(t, err, "missing argument <file>")

	_, err = env.run(t, "import", "--compare", "summary", env.marks)
	assert.Error(t, err)

	_, err = env.run(t, "import", "--format", "xml", env.marks)
	assert.ErrorContains(t, err, "unknown format")

	bad := filepath.Join(env.dir, "bad.html")
	require.NoError(t, os.WriteFile(bad, []byte("<p>no list here</p>"), 0o644))
	_, err = env.run(t, "import", bad)
	assert.ErrorIs(t, err, parsing.ErrMalformedInput)
}

func TestParse(t *testing.T) {
	env := newEnv(t)

	res := env.mustRun(t, "parse", env.marks)
	assert.Contains(t, res, "Tools")
	assert.Contains(t, res, "3 urls, 2 folders, 0 skipped")

	res = env.mustRun(t, "parse", "--yaml", env.marks)
	assert.Contains(t, res, "source_name: bookmarks.html")
	assert.Contains(t, res, "path: /Work/Tools/")

	res = env.mustRun(t, "parse", "--debug-dump", env.marks)
	assert.Contains(t, res, "marksync.Collection")
}

func TestSearch(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "import", env.marks)

	res := env.mustRun(t, "search", "sqlite")
	assert.Contains(t, res, "https://sqlite.org/")
	assert.NotContains(t, res, "https://go.dev/")

	res = env.mustRun(t, "search", "--fuzzy", "rds")
	assert.Contains(t, res, "https://redis.io/")

	_, err := env.run(t, "search")
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "import", env.marks)

	// sqlite ids are row ids
	res := env.mustRun(t, "annotate", "1", "--summary", "the go website", "--tag", "go", "--tag", "lang")
	assert.Contains(t, res, "annotated 1 with 2 tags")

	res = env.mustRun(t, "list", "--tag", "go")
	assert.Contains(t, res, "https://go.dev/")
	assert.NotContains(t, res, "https://redis.io/")

	_, err := env.run(t, "annotate", "999", "--summary", "x")
	assert.ErrorIs(t, err, bksync.ErrNotFound)

	// annotations survive a sync
	env.mustRun(t, "import", env.marks)
	assert.Contains(t, env.mustRun(t, "list", "--tag", "lang"), "https://go.dev/")
}

func TestExportHTML(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "import", env.marks)

	dest := filepath.Join(env.dir, "export.html")
	env.mustRun(t, "export", "html", dest)

	_, err := env.run(t, "export", "html", dest)
	assert.ErrorContains(t, err, "already exists")
	env.mustRun(t, "export", "html", "--force", dest)

	raw, err := os.ReadFile(dest)
	require.NoError(t, err)
	exported, err := parsing.Parse(raw)
	require.NoError(t, err)

	original, err := parsing.Parse([]byte(fixture))
	require.NoError(t, err)

	got := map[string]string{}
	for _, b := range tree.Flatten(exported) {
		got[b.URL] = b.FolderPath
	}
	for _, b := range tree.Flatten(original) {
		assert.Equal(t, b.FolderPath, got[b.URL], b.URL)
	}

	res := env.mustRun(t, "export", "html", "-")
	assert.Contains(t, res, "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	assert.Contains(t, res, "<H3>Tools</H3>")
}

func TestBackup(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "import", env.marks)

	dest := filepath.Join(env.dir, "backup.sqlite")
	res := env.mustRun(t, "backup", dest)
	assert.Contains(t, res, "backup written to")

	db, err := database.Open(context.Background(), dest)
	require.NoError(t, err)
	defer db.Close()
	count, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRedisBackend(t *testing.T) {
	env := newEnv(t)
	mr := miniredis.RunT(t)
	redis.Conf.Addr = mr.Addr()
	env.backend = store.BackendRedis

	res := env.mustRun(t, "import", env.marks)
	assert.Contains(t, res, "3 added")
	assert.NotEmpty(t, mr.Keys())

	res = env.mustRun(t, "search", "redis")
	assert.Contains(t, res, "https://redis.io/")

	_, err := env.run(t, "import", "--tx", env.marks)
	assert.ErrorIs(t, err, store.ErrNoTx)

	_, err = env.run(t, "backup", filepath.Join(env.dir, "b.sqlite"))
	assert.ErrorContains(t, err, "not supported")

	_, err = env.run(t, "list", "--tag", "go")
	assert.ErrorContains(t, err, "not supported")

	// the sqlite file was never created
	_, err = os.Stat(env.db)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigCommands(t *testing.T) {
	env := newEnv(t)

	res := env.mustRun(t, "config", "print")
	assert.Contains(t, res, "CompareFields")

	_, err := env.run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	res = env.mustRun(t, "config", "init", "--force")
	assert.Contains(t, res, env.conf)

	other := filepath.Join(env.dir, "sub", "other.toml")
	env.mustRun(t, "config", "init", other)
	raw, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[sync]")
	assert.Contains(t, string(raw), "[redis]")

	dir := filepath.Join(env.dir, "confdir")
	require.NoError(t, os.Mkdir(dir, 0o755))
	res = env.mustRun(t, "config", "init", dir)
	assert.Contains(t, res, filepath.Join(dir, config.ConfigFileName))
	_, err = os.Stat(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	env := newEnv(t)
	assert.Contains(t, env.mustRun(t, "version"), "marksync")
}

func waitOutput(t *testing.T, buf *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, output:\n%s", want, buf.String())
}

func TestWatch(t *testing.T) {
	env := newEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	buf := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- env.runWith(ctx, buf, "watch", "--debounce", "50ms", env.marks)
	}()

	waitOutput(t, buf, "3 added")

	edited := strings.Replace(fixture, "</DL>\n", `    <DT><A HREF="https://pkg.go.dev/">Packages</A>`+"\n</DL>\n", 1)
	require.NoError(t, os.WriteFile(env.marks, []byte(edited), 0o644))

	waitOutput(t, buf, "1 added, 0 updated, 0 deleted (4 new, 3 existing)")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
