// Package broadcast serves an editor over socket.io.
//
// Every client receives the current diagram as a "diagram" event on connect
// and again after every applied command, whoever sent it. Clients edit by
// emitting "command" with an editor.Command payload; a rejected command is
// answered with "command_error" to the sender only.
package broadcast
