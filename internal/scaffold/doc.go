// Package scaffold generates new extension source trees from embedded
// templates. It powers the "rfext new" command, producing the expected
// layout (info.yaml manifest, lib/ with the main script, html/ docs) ready
// for "rfext build".
package scaffold
