/*
Package report collects the stream of host version verdicts into a [Map] that
can be rendered at any time, while the queries are still under way as well as
after they have finished.
*/
package report
