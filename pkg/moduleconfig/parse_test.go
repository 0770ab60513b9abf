// pkg/moduleconfig/parse_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test decoding of ModuleConfig.xml documents

package moduleconfig_test

import (
	"strings"
	"testing"

	"github.com/arthur-debert/modwiz/pkg/condition"
	"github.com/arthur-debert/modwiz/pkg/errors"
	"github.com/arthur-debert/modwiz/pkg/filesystem"
	"github.com/arthur-debert/modwiz/pkg/installer"
	"github.com/arthur-debert/modwiz/pkg/moduleconfig"
	"github.com/arthur-debert/modwiz/pkg/wizard"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

// wrap puts body inside a config element with a module name
func wrap(body string) []byte {
	return []byte(`<?xml version="1.0"?><config><moduleName>Test</moduleName>` + body + `</config>`)
}

func TestParse_Scenario(t *testing.T) {
	cfg, err := moduleconfig.Parse([]byte(abcXML))
	require.NoError(t, err)

	assert.Equal(t, "ABC Mod", cfg.Name)
	assert.Equal(t, "fomod/images/cover.png", cfg.Image)
	assert.Nil(t, cfg.Prerequisites)
	require.Len(t, cfg.Steps, 2)

	choose := cfg.Steps[0]
	assert.Equal(t, "Choose", choose.Name)
	assert.Equal(t, condition.KindAlways, choose.Visibility.Kind())
	require.Len(t, choose.Groups, 1)
	assert.Equal(t, installer.SelectExactlyOne, choose.Groups[0].Rule)
	require.Len(t, choose.Groups[0].Plugins, 2)

	a := choose.Groups[0].Plugins[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "Variant A", a.Description)
	assert.Equal(t, []installer.Flag{{Name: "f", Value: "1"}}, a.Flags)
	assert.Equal(t, installer.TypeOptional, a.DefaultType)
	assert.Equal(t, []installer.FileEntry{{Source: "a", Destination: "a", Priority: 0}}, a.Files)

	extras := cfg.Steps[1]
	assert.Equal(t, `flag "f" == "2"`, extras.Visibility.String())
	assert.Equal(t, installer.SelectAny, extras.Groups[0].Rule)
	assert.Equal(t, 5, extras.Groups[0].Plugins[0].Files[0].Priority)

	s, err := wizard.NewSession(cfg, wizard.Options{
		FS:       filesystem.NewAferoFS(afero.NewMemMapFs()),
		Versions: condition.AlwaysSatisfied(),
	})
	require.NoError(t, err)
	_, err = s.Advance(nil)
	require.NoError(t, err)
	next, err := s.Advance(installer.Selection{{false, true}})
	require.NoError(t, err)
	require.NotNil(t, next)
	manifest, err := s.Finalize(installer.Selection{{true}})
	require.NoError(t, err)
	assert.Equal(t, []installer.FilePair{{Source: "b", Destination: "b"}, {Source: "c", Destination: "c"}}, manifest)
}

func TestParse_TextEncodings(t *testing.T) {
	utf16Doc := strings.Replace(abcXML, `encoding="utf-8"`, `encoding="utf-16"`, 1)

	le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(utf16Doc))
	require.NoError(t, err)
	be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(utf16Doc))
	require.NoError(t, err)
	noBOM, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(utf16Doc))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"utf-8", []byte(abcXML)},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, abcXML...)},
		{"utf-16le with BOM", le},
		{"utf-16be with BOM", be},
		{"utf-16le without BOM", noBOM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := moduleconfig.Parse(tt.data)
			require.NoError(t, err)
			assert.Equal(t, "ABC Mod", cfg.Name)
			assert.Len(t, cfg.Steps, 2)
		})
	}
}

func TestParse_Ordering(t *testing.T) {
	plugin := func(name string) string {
		return `<plugin name="` + name + `"><description/><typeDescriptor><type name="Optional"/></typeDescriptor></plugin>`
	}
	doc := wrap(`<installSteps>
		<installStep name="beta"><optionalFileGroups order="Descending">
			<group name="Alpha" type="SelectAny"><plugins order="Explicit">` + plugin("z") + plugin("a") + `</plugins></group>
			<group name="Omega" type="SelectAny"><plugins>` + plugin("Zeta") + plugin("eta") + `</plugins></group>
		</optionalFileGroups></installStep>
		<installStep name="Alpha"/>
	</installSteps>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cfg.Steps, 2)
	assert.Equal(t, "Alpha", cfg.Steps[0].Name, "steps default to ascending order")
	assert.Equal(t, "beta", cfg.Steps[1].Name)

	groups := cfg.Steps[1].Groups
	require.Len(t, groups, 2)
	assert.Equal(t, "Omega", groups[0].Name, "descending order")
	assert.Equal(t, "Alpha", groups[1].Name)

	assert.Equal(t, "eta", groups[0].Plugins[0].Name, "ascending ignores case")
	assert.Equal(t, "Zeta", groups[0].Plugins[1].Name)
	assert.Equal(t, "z", groups[1].Plugins[0].Name, "explicit keeps document order")
	assert.Equal(t, "a", groups[1].Plugins[1].Name)
}

func TestParse_AttributeValuesIgnoreCase(t *testing.T) {
	plugin := func(name string) string {
		return `<plugin name="` + name + `"><description/><typeDescriptor><type name="Optional"/></typeDescriptor></plugin>`
	}
	doc := wrap(`<moduleDependencies operator="or">
		<fileDependency file="Base.esm" state="active"/>
		<fileDependency file="Old.esp" state="MISSING"/>
	</moduleDependencies>
	<installSteps order="explicit">
		<installStep name="b"><optionalFileGroups order="DESCENDING">
			<group name="G" type="SelectAny"><plugins order="ascending">` + plugin("y") + plugin("x") + `</plugins></group>
		</optionalFileGroups></installStep>
		<installStep name="a"/>
	</installSteps>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cfg.Steps, 2)
	assert.Equal(t, "b", cfg.Steps[0].Name, "explicit keeps document order")
	assert.Equal(t, "x", cfg.Steps[0].Groups[0].Plugins[0].Name)

	assert.Equal(t, condition.KindOr, cfg.Prerequisites.Kind())
	children := cfg.Prerequisites.Children()
	require.Len(t, children, 2)
	assert.Equal(t, condition.FilePresent, children[0].State())
	assert.Equal(t, condition.FileAbsent, children[1].State())
}

func TestParse_Dependencies(t *testing.T) {
	doc := wrap(`<moduleDependencies operator="Or">
		<fileDependency file="Data\Base.esm" state="Active"/>
		<dependencies operator="And">
			<flagDependency flag="mode" value="full"/>
			<gameDependency version="1.5.97"/>
			<fommDependency version="0.13"/>
			<fileDependency file="Old.esp" state="Missing"/>
			<fileDependency file="Off.esp" state="Inactive"/>
		</dependencies>
	</moduleDependencies>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)
	require.NotNil(t, cfg.Prerequisites)

	pre := cfg.Prerequisites
	assert.Equal(t, condition.KindOr, pre.Kind())
	children := pre.Children()
	require.Len(t, children, 2)

	assert.Equal(t, condition.KindFile, children[0].Kind())
	assert.Equal(t, "Data/Base.esm", children[0].Path())
	assert.Equal(t, condition.FilePresent, children[0].State())

	nested := children[1]
	assert.Equal(t, condition.KindAnd, nested.Kind())
	kinds := []condition.Kind{}
	for _, c := range nested.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []condition.Kind{
		condition.KindFlag, condition.KindGameVersion, condition.KindInstallerVersion, condition.KindFile, condition.KindFile,
	}, kinds)
	name, value := nested.Children()[0].Flag()
	assert.Equal(t, "mode", name)
	assert.Equal(t, "full", value)
	assert.Equal(t, "1.5.97", nested.Children()[1].Version())
	assert.Equal(t, condition.FileAbsent, nested.Children()[3].State())
	assert.Equal(t, condition.FileAbsent, nested.Children()[4].State())
}

func TestParse_Files(t *testing.T) {
	doc := wrap(`<requiredInstallFiles>
		<file source="plugins\Core.esp"/>
		<folder source="textures\" destination="textures" priority="2" alwaysInstall="true"/>
		<file source="readme.txt" destination="" installIfUsable="1" priority="-1"/>
	</requiredInstallFiles>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, []installer.FileEntry{
		{Source: "plugins/Core.esp", Destination: "plugins/Core.esp", Priority: installer.DefaultPriority},
		{Source: "textures/", Destination: "textures", Priority: 2, AlwaysInstall: true},
		{Source: "readme.txt", Destination: "", Priority: -1, InstallIfUsable: true},
	}, cfg.RequiredFiles)
}

func TestParse_TypePatternsAndConditionalInstalls(t *testing.T) {
	doc := wrap(`<installSteps order="Explicit"><installStep name="Patches"><optionalFileGroups><group name="G" type="SelectAny"><plugins>
		<plugin name="Patch">
			<description>Compatibility patch</description>
			<image path="fomod\patch.png"/>
			<typeDescriptor>
				<dependencyType>
					<defaultType name="NotUsable"/>
					<patterns>
						<pattern>
							<dependencies><fileDependency file="Other.esp" state="Active"/></dependencies>
							<type name="Recommended"/>
						</pattern>
					</patterns>
				</dependencyType>
			</typeDescriptor>
		</plugin>
	</plugins></group></optionalFileGroups></installStep></installSteps>
	<conditionalFileInstalls><patterns>
		<pattern>
			<dependencies operator="And"><flagDependency flag="hd" value="On"/></dependencies>
			<files><folder source="hd" destination="textures"/></files>
		</pattern>
	</patterns></conditionalFileInstalls>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)

	plugin := cfg.Steps[0].Groups[0].Plugins[0]
	assert.Equal(t, "fomod/patch.png", plugin.Image)
	assert.Equal(t, installer.TypeNotUsable, plugin.DefaultType)
	require.Len(t, plugin.TypePatterns, 1)
	assert.Equal(t, installer.TypeRecommended, plugin.TypePatterns[0].Type)
	assert.Equal(t, `file "Other.esp" is present`, plugin.TypePatterns[0].Condition.String())

	require.Len(t, cfg.ConditionalPatterns, 1)
	cp := cfg.ConditionalPatterns[0]
	assert.Equal(t, `flag "hd" == "On"`, cp.Condition.String())
	assert.Equal(t, []installer.FileEntry{
		{Source: "hd", Destination: "textures", Priority: installer.DefaultPriority},
	}, cp.Files)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		code     errors.ErrorCode
		problems int
	}{
		{
			name: "malformed xml",
			data: []byte(`<config><moduleName>x</config>`),
			code: errors.ErrConfigParse,
		},
		{
			name: "wrong root",
			data: []byte(`<fomod><Name>x</Name></fomod>`),
			code: errors.ErrConfigInvalid,
		},
		{
			name: "plugin problems",
			data: wrap(`<installSteps><installStep name="S"><optionalFileGroups><group name="G" type="SelectAny"><plugins>
				<plugin name="NoType"><description/></plugin>
				<plugin name="BadType"><description/><typeDescriptor><type name="Mandatory"/></typeDescriptor></plugin>
				<plugin name="NoDefault"><description/><typeDescriptor><dependencyType><patterns>
					<pattern><type name="Optional"/></pattern>
				</patterns></dependencyType></typeDescriptor></plugin>
			</plugins></group></optionalFileGroups></installStep></installSteps>`),
			code: errors.ErrConfigInvalid,
			// missing typeDescriptor, unknown type, missing defaultType, pattern without dependencies
			problems: 4,
		},
		{
			name: "dependency and file problems",
			data: wrap(`<moduleDependencies operator="Xor">
					<fileDependency file="a.esp" state="Enabled"/>
				</moduleDependencies>
				<requiredInstallFiles>
					<file destination="x"/>
					<file source="y" priority="high" alwaysInstall="maybe"/>
				</requiredInstallFiles>`),
			code: errors.ErrConfigInvalid,
			// unknown state, unknown operator, missing source, bad priority, bad alwaysInstall
			problems: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := moduleconfig.Parse(tt.data)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), "got %v", err)
			if tt.problems > 0 {
				problems, ok := errors.GetErrorDetails(err)["problems"].([]string)
				require.True(t, ok)
				assert.Len(t, problems, tt.problems, "problems: %v", problems)
			}
		})
	}
}

func TestParse_UnsupportedDependencyIsIgnored(t *testing.T) {
	doc := wrap(`<moduleDependencies>
		<foseDependency version="1.2"/>
		<flagDependency flag="x" value="1"/>
	</moduleDependencies>`)

	cfg, err := moduleconfig.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, `flag "x" == "1"`, cfg.Prerequisites.String())
}
