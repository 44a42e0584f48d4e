// Command memctl drives a memkit arena from the command line: it runs
// operation scripts, replays the built-in self-check scenario and dumps the
// block directory.
package main

func main() {
	execute()
}
