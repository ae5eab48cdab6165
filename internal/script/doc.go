// Package script runs Lua scripts against an open document session.
//
// Scripts run in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened, and the loaders that read files or
// compile strings are removed. Editing goes through the global "ink"
// module, whose functions mirror the editor operations and take positions
// in the "fragment:index" form used by document files:
//
//	ink.select("a:0", "a:5")
//	ink.format("bold")
//	ink.on_command(function(ev) return ev.name ~= "delete" end)
//
// Editor errors are raised as Lua errors, so scripts can recover them
// with pcall. print writes to the runner's output.
package script
