/*
Package config manages configuration parsing and validation for iconrc.

	                 +-------------+
	                 |   Config    |
	                 |  (Source,   |
	                 |   Output)   |
	                 +------+------+
	                        |
	     +---------+--------+--------+---------+
	     |         |                 |         |
	+----+---+ +---+----+      +-----+--+ +----+---+
	|  YAML  | |  HCL   |      |  JSON  | |  TOML  |
	| Parser | | Parser |      | Parser | | Parser |
	+--------+ +--------+      +--------+ +--------+

🎯 Purpose:
- Selects the icon source (directory, archive or github) and its options
- Chooses the default export directory
- Lists glob patterns hidden from listings

🔄 Flow:
1. Reads the configuration file, if one exists
2. Parses format-specific syntax (picked by file extension)
3. Overlays ICONRC_* and GITHUB_TOKEN environment variables
4. Validates and fills defaults

Command line flags are applied by the caller after Load returns, so the
effective precedence is defaults < file < environment < flags.

🔍 Example:

	# .iconrc.yaml
	source:
	  kind: archive
	  path: ./vendor/lucide-icons.tar.gz
	output: ./public/icons
	ignore:
	  - "*-off"

	# .iconrc.hcl
	source {
	  kind = "directory"
	  path = "${home}/icons"
	}
*/
package config
