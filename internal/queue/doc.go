// Package queue provides the buffer between the harvest coordinator and
// the buffered record writers. The buffer grows instead of blocking so a
// slow database flush never stalls batch fetching.
package queue
