// Package chart renders the comparison figures: approximate area versus N,
// relative error versus N, and both stacked in one image. The error axis
// switches to a logarithmic scale when the data spans more than two decades;
// that decision is made once per render and shared by every figure.
package chart
