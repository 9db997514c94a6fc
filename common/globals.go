package common

// NakoVersion is the current nakofront version as a string.
const NakoVersion string = "0.1.0"

// NakoFileExt is the file extension for a source file.
const NakoFileExt string = ".nako3"

// ConfigFileName is the name of the project configuration file.
const ConfigFileName string = "nako3.toml"

// SystemPluginName is the name of the built-in plugin that is always enabled.
const SystemPluginName string = "plugin_system"

// DefaultRuntime is the runtime used when none is configured.
const DefaultRuntime string = "cnako"
