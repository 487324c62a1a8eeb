// Package schemas holds the JSON Schemas for the profile and pool files read by the CLI.
package schemas

import "embed"

// BaseURL prefixes every schema $id; references between schemas use the full URL
const BaseURL = "https://job-matcher.local/schemas/"

// FS contains every *.schema.json file in this directory
//
//go:embed *.schema.json
var FS embed.FS
