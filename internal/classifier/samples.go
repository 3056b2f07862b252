package classifier

import "topiclab/internal/domain"

// SampleDocuments are classified when no text is given on the command line.
var SampleDocuments = []domain.Document{
	{
		Title: "Sample 1 – Technology / Gaming",
		Text: "The new graphics card delivers amazing performance for gaming. " +
			"The GPU can handle 4K resolution easily with ray tracing enabled. " +
			"Gamers will love the improved frame rates.",
	},
	{
		Title: "Sample 2 – Science / Space",
		Text: "Scientists discovered a new exoplanet orbiting a distant star in the " +
			"habitable zone. The research team published their findings in Nature " +
			"journal. This discovery could provide insights into planetary formation.",
	},
	{
		Title: "Sample 3 – Sports",
		Text: "The basketball team won the championship after an incredible final game. " +
			"The players celebrated with fans in the stadium. It was the team's first " +
			"title in twenty years.",
	},
	{
		Title: "Sample 4 – Politics",
		Text: "Congress passed a new bill regarding healthcare reform. The president is " +
			"expected to sign the legislation next week. The policy will affect millions " +
			"of citizens across the country.",
	},
	{
		Title: "Sample 5 – Food / Cooking",
		Text: "I love cooking Italian food at home. Pasta carbonara and margherita pizza " +
			"are my favorite dishes to make. Fresh ingredients make all the difference " +
			"in authentic recipes.",
	},
}
