package brief

import (
	"fmt"
	"strings"

	"github.com/leofalp/sitebrief/core/webpage"
)

// Prompt wording is part of the product: the output quality was tuned
// against these exact texts. Edit with care.

const summarySystemPrompt = "You are an assistant that analyzes the contents of a website " +
	"and provides a short summary, ignoring text that might be navigation related. " +
	"Respond in markdown."

func summaryUserPrompt(page *webpage.Page) string {
	return fmt.Sprintf("You are looking at a website titled %s\n\n"+
		"The contents of this website are as follows; "+
		"please provide a short summary of this website in markdown. "+
		"If it includes news or announcements, then summarize these too.\n\n%s",
		page.Title, page.Text)
}

const linkSelectionSystemPrompt = "You are provided with a list of links found on a webpage. " +
	"You are able to decide which of the links would be most relevant to include " +
	"in a brochure about the company, such as links to an About page, Company page, or Careers/Jobs pages.\n" +
	"You should respond in JSON as in this example:\n" +
	"{\n" +
	"    \"links\": [\n" +
	"        {\"type\": \"about page\", \"url\": \"https://full.url/goes/here/about\"},\n" +
	"        {\"type\": \"careers page\", \"url\": \"https://another.full.url/careers\"}\n" +
	"    ]\n" +
	"}\n"

func linkSelectionUserPrompt(page *webpage.Page) string {
	return fmt.Sprintf("Here is the list of links on the website of %s. "+
		"Please decide which of these are relevant web links for a brochure about the company. "+
		"Respond with the full https URL in JSON format. "+
		"Do not include Terms of Service, Privacy, or email links.\n\n"+
		"Links (some might be relative links):\n%s",
		page.URL, strings.Join(page.Links, "\n"))
}

const brochureSystemPrompt = "You are an assistant that analyzes the contents of several relevant pages " +
	"from a company website and creates a short brochure about the company " +
	"for prospective customers, investors, and recruits. Respond in markdown. " +
	"Include details of company culture, customers, and careers/jobs if available."

func brochureUserPrompt(companyName, document string) string {
	return fmt.Sprintf("You are looking at a company called: %s\n"+
		"Here are the contents of its landing page and other relevant pages; "+
		"use this information to build a short brochure of the company in markdown.\n%s",
		companyName, document)
}
