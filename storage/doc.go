// Package storage provides the ordered container disciplines backing
// gochannels' wait-groups and buffered channels: FIFO, LIFO, and a
// priority (min-heap) discipline over totally ordered elements.
package storage
