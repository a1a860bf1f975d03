// Command admissionsctl is the operator CLI for the admissions store: it
// lists, edits, deletes and exports applications without going through the
// process engine.
package main

func main() {
	Execute()
}
