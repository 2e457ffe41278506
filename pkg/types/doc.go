// Package types defines the Store and Table interfaces, the SAP
// transformation entity types (process hierarchy, requirements, WRICEF and
// configuration items, test cases, scope items), and the standard errors
// shared across the Traceline system.
package types
