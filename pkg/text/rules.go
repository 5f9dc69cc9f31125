package text

// ProjectPageRules returns the fixed rule set that aligns a project page with
// the shared project-page styling. The order matters: every rule is applied
// to the output of the previous one.
//
// The icon rules close the tag unconditionally, so an already closed icon
// gains a second closing tag.
func ProjectPageRules() []ReplacementRule {
	return []ReplacementRule{
		// body gets the project-page class
		{FromText: `<body>`, ToText: `<body class="project-page">`},
		// primary buttons get bottom spacing
		{FromText: `class="btn btn-primary"`, ToText: `class="btn btn-primary mb-2"`},
		// github link icon
		{FromText: `<i class="bi bi-github">`, ToText: `<i class="bi bi-github"></i>`},
		// demo link icon
		{FromText: `<i class="bi bi-box-arrow-up-right">`, ToText: `<i class="bi bi-box-arrow-up-right"></i>`},
	}
}
