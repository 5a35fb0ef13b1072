/*
Package sqlgate provides the SQL statement dispatcher.

DispatchGate is a PureGate named "sql" that routes a statement to one of
a fixed set of parse event types by its leading keywords (CREATE TABLE,
DROP INDEX, SELECT, and so on). It does no parsing beyond that; the
grammar parsers consuming the parse events are external collaborators.
*/
package sqlgate
