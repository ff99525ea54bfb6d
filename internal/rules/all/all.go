// Package all imports all rule packages to register them.
// Import this package with a blank identifier to enable all rules:
//
//	import _ "github.com/skillworks/skillctl/internal/rules/all"
package all

import (
	// Import all rule packages to trigger their init() registration
	_ "github.com/skillworks/skillctl/internal/rules/prose"
	_ "github.com/skillworks/skillctl/internal/rules/structure"
)
