// Package file provides file-based configuration and prompt storage.
//
// ConfigStore persists application settings as TOML under the techpack
// directory. PromptStore serves user-editable prompt templates from
// plain text files, falling back to embedded defaults.
package file
