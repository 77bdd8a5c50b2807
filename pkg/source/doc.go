/*
Package source defines the interface for icon backends in iconrc.

	            +-------------+
	            |   Source    |
	            |  (Backend)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+  +-----+-----+  +----+----+
	|Directory|  |  Archive  |  | GitHub  |
	| (*.svg) |  | (.tar.gz) |  |  (API)  |
	+---------+  +-----------+  +---------+

🎯 Purpose:
- Abstracts where icons live
- Lists available icons as icon.Record values
- Opens raw icon content by locator

🔄 Flow:
1. Backends register a Factory for their kind in init
2. New picks the factory named by config.Source.Kind
3. Enumerate re-reads the backend on every call
4. Fetch opens one locator at a time

Every error a backend returns matches one of the icon.Err* kinds.
Sources keep no cache and are safe for sequential reuse only.
*/
package source
