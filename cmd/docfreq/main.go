// Package main provides the docfreq command line tool.
//
// Usage:
//
//	docfreq analyze report.pdf --top 20 --cloud cloud.png --chart chart.png
//	docfreq stopwords
package main

func main() {
	Execute()
}
