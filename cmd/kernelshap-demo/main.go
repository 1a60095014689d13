// Command kernelshap-demo runs the Kernel SHAP explainer against a literal
// or YAML-configured oracle — an application-level consumer of the
// kernelshap package, not part of its core surface.
package main

func main() {
	Execute()
}
