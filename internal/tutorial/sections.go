package tutorial

// Sections returns the built-in tutorial tree. Every call builds a fresh copy.
func Sections() []Node {
	return []Node{
		Branch("Welcome",
			Leaf("Sicompass is a keyboard-driven navigable structure."),
			Leaf("Use j/k or arrows to move up and down in this list."),
			Leaf("Press Enter or l to go deeper. Press Escape or h to go back."),
		),
		Branch("Navigation",
			Branch("Moving Around",
				Leaf("h or Left Arrow: go back (parent level)"),
				Leaf("j or Down Arrow: move down in list"),
				Leaf("k or Up Arrow: move up in list"),
				Leaf("l or Right Arrow / Enter: go into selected item"),
			),
			Branch("Modes",
				Leaf("o: operator mode - navigate and perform actions"),
				Leaf("e: editor mode - edit text content"),
				Leaf(":: command mode - type commands"),
				Leaf("Tab: search mode - filter items in current view"),
			),
		),
		Branch("Editing",
			Leaf("Press i to enter insert mode on an editable item."),
			Leaf("Press a to enter append mode."),
			Leaf("Press Escape to return to operator mode."),
			Leaf("Press Enter to confirm your edit."),
			Leaf("<input>Try it: press i and change this line</input>"),
			Branch("Long Text",
				Leaf("Items are not limited to a single line.\n"+
					"A long entry keeps its paragraphs together and is shown as one item.\n\n"+
					"Editing it in insert mode works the same way as editing a short line; "+
					"the line breaks are part of the text."),
			),
		),
		Branch("Commands",
			Leaf("Press : to enter command mode."),
			Leaf(":create file - create a new file (in file browser)"),
			Leaf(":create directory - create a new directory"),
			Leaf(":editor mode - switch to editor mode"),
			Leaf(":operator mode - switch to operator mode"),
		),
		Branch("File Browser",
			Leaf("The file browser is another provider below this tutorial."),
			Leaf("Navigate into it to browse your filesystem."),
			Leaf("You can rename files and directories with insert mode."),
			Leaf("You can create files and directories with : commands."),
		),
		Branch("Next Steps",
			Leaf("Press Escape or h to go back to the root."),
			Leaf("Navigate down to the file browser to explore your files."),
			Leaf("Happy navigating!"),
		),
	}
}
