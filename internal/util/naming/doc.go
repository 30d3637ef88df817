// Package naming provides consistent naming functions for Azure resources.
//
// Resource names follow the pattern {project}-{type} where Azure allows
// hyphens. Storage accounts allow only 3-24 lowercase alphanumeric
// characters, so their names are {project}storage{timestamp} cut to 24
// characters. The timestamp is captured once per run; two runs for the same
// project within the same second produce the same storage account name.
package naming
