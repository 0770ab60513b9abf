package moduleconfig_test

// abcXML is a two-step module: step one offers A (f=1) or B (f=2), step
// two offers C and is shown only when f is 2
const abcXML = `<?xml version="1.0" encoding="utf-8"?>
<config xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="http://qconsulting.ca/fo3/ModConfig5.0.xsd">
	<moduleName>ABC Mod</moduleName>
	<moduleImage path="fomod\images\cover.png"/>
	<installSteps order="Explicit">
		<installStep name="Choose">
			<optionalFileGroups order="Explicit">
				<group name="Variant" type="SelectExactlyOne">
					<plugins order="Explicit">
						<plugin name="A">
							<description>Variant A</description>
							<files>
								<file source="a" destination="a" priority="0"/>
							</files>
							<conditionFlags>
								<flag name="f">1</flag>
							</conditionFlags>
							<typeDescriptor>
								<type name="Optional"/>
							</typeDescriptor>
						</plugin>
						<plugin name="B">
							<description>Variant B</description>
							<files>
								<file source="b" destination="b" priority="0"/>
							</files>
							<conditionFlags>
								<flag name="f">2</flag>
							</conditionFlags>
							<typeDescriptor>
								<type name="Optional"/>
							</typeDescriptor>
						</plugin>
					</plugins>
				</group>
			</optionalFileGroups>
		</installStep>
		<installStep name="Extras">
			<visible>
				<flagDependency flag="f" value="2"/>
			</visible>
			<optionalFileGroups order="Explicit">
				<group name="Extras" type="SelectAny">
					<plugins order="Explicit">
						<plugin name="C">
							<description>Extra C</description>
							<files>
								<file source="c" destination="c" priority="5"/>
							</files>
							<typeDescriptor>
								<type name="Optional"/>
							</typeDescriptor>
						</plugin>
					</plugins>
				</group>
			</optionalFileGroups>
		</installStep>
	</installSteps>
</config>
`

const infoXML = `<?xml version="1.0" encoding="utf-8"?>
<fomod>
	<Name>ABC Mod</Name>
	<Author>Someone</Author>
	<Version MachineVersion="1.2">1.2.0</Version>
	<Website>https://example.com/abc</Website>
	<Description>Adds **A**, **B** and **C**.</Description>
	<Groups>
		<element>Armour</element>
		<element>Patches</element>
	</Groups>
</fomod>
`
