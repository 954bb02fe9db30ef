package manifest

// InfoPlistName is the manifest filename inside a built .roboFontExt bundle.
const InfoPlistName = "info.plist"

// InfoYAMLName is the manifest filename used by extension source trees.
// The builder converts it to info.plist when assembling the bundle.
const InfoYAMLName = "info.yaml"

// Info is the extension bundle manifest. Field names follow the keys
// RoboFont reads from info.plist; the yaml tags cover the info.yaml form
// used by source trees before a bundle is built.
type Info struct {
	Name                 string     `plist:"name" yaml:"name" json:"name"`
	Version              string     `plist:"version" yaml:"version" json:"version"`
	Developer            string     `plist:"developer,omitempty" yaml:"developer,omitempty" json:"developer,omitempty"`
	DeveloperURL         string     `plist:"developerURL,omitempty" yaml:"developerURL,omitempty" json:"developerURL,omitempty"`
	DocumentationURL     string     `plist:"documentationURL,omitempty" yaml:"documentationURL,omitempty" json:"documentationURL,omitempty"`
	HTML                 bool       `plist:"html" yaml:"html" json:"html"`
	LaunchAtStartUp      bool       `plist:"launchAtStartUp" yaml:"launchAtStartUp" json:"launchAtStartUp"`
	MainScript           string     `plist:"mainScript" yaml:"mainScript" json:"mainScript"`
	UninstallScript      string     `plist:"uninstallScript,omitempty" yaml:"uninstallScript,omitempty" json:"uninstallScript,omitempty"`
	AddToMenu            []MenuItem `plist:"addToMenu" yaml:"addToMenu" json:"addToMenu"`
	TimeStamp            float64    `plist:"timeStamp" yaml:"timeStamp,omitempty" json:"timeStamp"`
	ExpireDate           string     `plist:"expireDate,omitempty" yaml:"expireDate,omitempty" json:"expireDate,omitempty"`
	RequiresVersionMajor string     `plist:"requiresVersionMajor,omitempty" yaml:"requiresVersionMajor,omitempty" json:"requiresVersionMajor,omitempty"`
	RequiresVersionMinor string     `plist:"requiresVersionMinor,omitempty" yaml:"requiresVersionMinor,omitempty" json:"requiresVersionMinor,omitempty"`
}

// MenuItem is one entry of the addToMenu array: a script exposed in
// RoboFont's Extensions menu, optionally bound to a shortcut.
type MenuItem struct {
	Path          string `plist:"path" yaml:"path" json:"path"`
	PreferredName string `plist:"preferredName" yaml:"preferredName" json:"preferredName"`
	ShortKey      string `plist:"shortKey" yaml:"shortKey" json:"shortKey"`
}
