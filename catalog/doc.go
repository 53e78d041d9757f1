// Package catalog builds wrapper definitions and records from YAML at
// runtime. Every entry exposes the three derived adapters (validator, plain
// codec, pickler) over values boxed as any:
//
//	types:
//	  - name: Username
//	    kind: opaque
//	    base: string
//	    rules:
//	      - rule: nonEmpty
//	      - rule: maxLength
//	        value: 16
//	records:
//	  - name: Account
//	    fields:
//	      - name: username
//	        type: Username
//
// A base is a primitive (string, int, float, bool, time) or another type of
// the same catalog. Record values are Object maps.
package catalog
