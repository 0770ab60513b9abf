package condition_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFS records Stat calls per path
type countingFS struct {
	filesystem.FS
	stats map[string]int
}

func (c *countingFS) Stat(name string) (fs.FileInfo, error) {
	c.stats[name]++
	return c.FS.Stat(name)
}

// recordingVersions records every requirement it is asked about
type recordingVersions struct {
	asked  []string
	result bool
}

func (r *recordingVersions) GameVersion(required string) bool {
	r.asked = append(r.asked, "game:"+required)
	return r.result
}

func (r *recordingVersions) InstallerVersion(required string) bool {
	r.asked = append(r.asked, "installer:"+required)
	return r.result
}

func newTestEnv(t *testing.T, files ...string) (*condition.Env, *countingFS) {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(mem, f, []byte("x"), 0644))
	}
	cfs := &countingFS{FS: filesystem.NewAferoFS(mem), stats: map[string]int{}}
	return &condition.Env{
		FS:         cfs,
		TargetRoot: "/game/Data",
		Flags:      map[string]string{},
		Versions:   condition.AlwaysSatisfied(),
	}, cfs
}

func TestEvaluate_Combinators(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Flags["f"] = "1"

	tests := []struct {
		name string
		node *condition.Node
		want bool
	}{
		{"always", condition.Always(), true},
		{"empty and", condition.And(), true},
		{"empty or", condition.Or(), true},
		{"and all true", condition.And(condition.FlagCheck("f", "1"), condition.Always()), true},
		{"and one false", condition.And(condition.FlagCheck("f", "1"), condition.FlagCheck("f", "2")), false},
		{"or one true", condition.Or(condition.FlagCheck("f", "2"), condition.FlagCheck("f", "1")), true},
		{"or none true", condition.Or(condition.FlagCheck("f", "2"), condition.FlagCheck("f", "3")), false},
		{
			"nested",
			condition.And(
				condition.Or(condition.FlagCheck("f", "9"), condition.FlagCheck("f", "1")),
				condition.Always(),
			),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Evaluate(env))
		})
	}
}

func TestEvaluate_ShortCircuits(t *testing.T) {
	env, _ := newTestEnv(t)

	t.Run("and stops at first false", func(t *testing.T) {
		versions := &recordingVersions{result: false}
		env.Versions = versions
		node := condition.And(condition.GameVersion("1.0"), condition.InstallerVersion("5.0"))

		assert.False(t, node.Evaluate(env))
		assert.Equal(t, []string{"game:1.0"}, versions.asked)
	})

	t.Run("or stops at first true", func(t *testing.T) {
		versions := &recordingVersions{result: true}
		env.Versions = versions
		node := condition.Or(condition.GameVersion("1.0"), condition.InstallerVersion("5.0"))

		assert.True(t, node.Evaluate(env))
		assert.Equal(t, []string{"game:1.0"}, versions.asked)
	})
}

func TestEvaluate_FileCheck(t *testing.T) {
	env, _ := newTestEnv(t, "/game/Data/Skyrim.esm", "/game/Data/meshes/body.nif")

	tests := []struct {
		name string
		node *condition.Node
		want bool
	}{
		{"present and exists", condition.FileCheck("Skyrim.esm", condition.FilePresent), true},
		{"present and missing", condition.FileCheck("Dawnguard.esm", condition.FilePresent), false},
		{"absent and missing", condition.FileCheck("Dawnguard.esm", condition.FileAbsent), true},
		{"absent and exists", condition.FileCheck("Skyrim.esm", condition.FileAbsent), false},
		{"backslash path", condition.FileCheck(`meshes\body.nif`, condition.FilePresent), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Evaluate(env))
		})
	}
}

func TestEvaluate_FileChecksAreCachedPerEnv(t *testing.T) {
	env, cfs := newTestEnv(t, "/game/Data/Skyrim.esm")
	leaf := condition.FileCheck("Skyrim.esm", condition.FilePresent)
	node := condition.And(leaf, condition.Or(condition.FlagCheck("x", "y"), leaf), leaf)

	assert.True(t, node.Evaluate(env))
	assert.True(t, node.Evaluate(env))
	assert.Equal(t, 1, cfs.stats["/game/Data/Skyrim.esm"])

	fresh := env.WithFlags(map[string]string{})
	assert.True(t, leaf.Evaluate(fresh))
	assert.Equal(t, 2, cfs.stats["/game/Data/Skyrim.esm"], "a new env starts with an empty cache")
}

func TestEvaluate_FlagCheck(t *testing.T) {
	tests := []struct {
		name   string
		flags  map[string]string
		policy condition.UnsetFlagPolicy
		check  *condition.Node
		want   bool
	}{
		{"equal", map[string]string{"armor": "heavy"}, condition.UnsetMatchesEmpty, condition.FlagCheck("armor", "heavy"), true},
		{"different", map[string]string{"armor": "light"}, condition.UnsetMatchesEmpty, condition.FlagCheck("armor", "heavy"), false},
		{"set to empty", map[string]string{"armor": ""}, condition.UnsetMatchesEmpty, condition.FlagCheck("armor", ""), true},
		{"unset against value", map[string]string{}, condition.UnsetMatchesEmpty, condition.FlagCheck("armor", "heavy"), false},
		{"unset against empty", map[string]string{}, condition.UnsetMatchesEmpty, condition.FlagCheck("armor", ""), true},
		{"unset against empty, strict", map[string]string{}, condition.UnsetNeverMatches, condition.FlagCheck("armor", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newTestEnv(t)
			env.Flags = tt.flags
			env.UnsetFlags = tt.policy
			assert.Equal(t, tt.want, tt.check.Evaluate(env))
		})
	}
}

func TestEvaluate_UnsetFlagWarnsOncePerEnv(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.WarnLevel)
	env, _ := newTestEnv(t)
	env.Logger = &logger

	check := condition.FlagCheck("armor", "")
	assert.True(t, condition.And(check, check).Evaluate(env))

	assert.Equal(t, 1, strings.Count(buf.String(), "Flag is unset"))
	assert.Contains(t, buf.String(), `"flag":"armor"`)
}

func TestEvaluate_VersionChecks(t *testing.T) {
	env, _ := newTestEnv(t)
	env.Versions = condition.VersionFuncs{
		Game:      func(v string) bool { return v == "1.5.97" },
		Installer: func(v string) bool { return v == "0.5" },
	}

	assert.True(t, condition.GameVersion("1.5.97").Evaluate(env))
	assert.False(t, condition.GameVersion("1.6").Evaluate(env))
	assert.True(t, condition.InstallerVersion("0.5").Evaluate(env))

	env.Versions = condition.VersionFuncs{}
	assert.False(t, condition.GameVersion("1.5.97").Evaluate(env), "nil closure never satisfies")

	env.Versions = nil
	assert.False(t, condition.InstallerVersion("0.5").Evaluate(env), "missing checker never satisfies")
}

func TestOr_CollapsesSamePathFileChecks(t *testing.T) {
	t.Run("present wins over absent", func(t *testing.T) {
		node := condition.Or(
			condition.FileCheck("a.esp", condition.FileAbsent),
			condition.FlagCheck("f", "1"),
			condition.FileCheck("a.esp", condition.FilePresent),
		)
		children := node.Children()
		require.Len(t, children, 2)
		assert.Equal(t, condition.KindFile, children[0].Kind())
		assert.Equal(t, condition.FilePresent, children[0].State())
		assert.Equal(t, condition.KindFlag, children[1].Kind())
	})

	t.Run("first kept without a present check", func(t *testing.T) {
		first := condition.FileCheck("a.esp", condition.FileAbsent)
		node := condition.Or(first, condition.FileCheck(`a.esp`, condition.FileAbsent))
		children := node.Children()
		require.Len(t, children, 1)
		assert.Same(t, first, children[0])
	})

	t.Run("different paths are kept", func(t *testing.T) {
		node := condition.Or(
			condition.FileCheck("a.esp", condition.FilePresent),
			condition.FileCheck("b.esp", condition.FilePresent),
		)
		assert.Len(t, node.Children(), 2)
	})

	t.Run("other leaves are never collapsed", func(t *testing.T) {
		node := condition.Or(condition.FlagCheck("f", "1"), condition.FlagCheck("f", "1"))
		assert.Len(t, node.Children(), 2)
	})

	t.Run("and is not normalized", func(t *testing.T) {
		node := condition.And(
			condition.FileCheck("a.esp", condition.FilePresent),
			condition.FileCheck("a.esp", condition.FileAbsent),
		)
		assert.Len(t, node.Children(), 2)
	})
}

func TestOr_CollapsedEvaluatesLikeSinglePresentCheck(t *testing.T) {
	for _, files := range [][]string{nil, {"/game/Data/a.esp"}} {
		env, _ := newTestEnv(t, files...)
		quirk := condition.Or(
			condition.FileCheck("a.esp", condition.FilePresent),
			condition.FileCheck("a.esp", condition.FileAbsent),
		)
		single := condition.FileCheck("a.esp", condition.FilePresent)
		assert.Equal(t, single.Evaluate(env), quirk.Evaluate(env), "files=%v", files)
	}
}

func TestNode_Validate(t *testing.T) {
	assert.NoError(t, condition.And(condition.Always(), condition.FlagCheck("f", "")).Validate())

	err := condition.And(
		nil,
		condition.Or(condition.FileCheck("", condition.FilePresent)),
		condition.FlagCheck("", "x"),
		condition.GameVersion(""),
	).Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	problems, ok := errors.GetErrorDetails(err)["problems"].([]string)
	require.True(t, ok)
	assert.Len(t, problems, 4)
}

func TestNode_String(t *testing.T) {
	node := condition.And(
		condition.FileCheck(`Data\a.esp`, condition.FilePresent),
		condition.Or(condition.FlagCheck("f", "1"), condition.GameVersion("1.5")),
	)
	assert.Equal(t, `(file "Data/a.esp" is present AND (flag "f" == "1" OR game version >= 1.5))`, node.String())
	assert.Equal(t, "always", condition.And().String())
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "textures/armor/a.dds", condition.NormalizePath(`textures\armor\\a.dds`))
	assert.Equal(t, "a.esp", condition.NormalizePath(`\a.esp`))
	assert.Equal(t, "", condition.NormalizePath(""))
}
