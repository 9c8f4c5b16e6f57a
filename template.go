package main

import (
	"fmt"
	"time"
)

const codeFence = "```"

// Section titles of an entry, in the order they are written.
const (
	sectionLearned = "📌 오늘 배운 것"
	sectionFelt    = "🧠 느낀 점"
	sectionCode    = "💻 코드 예시"
	sectionLinks   = "🔗 참고 링크"

	datePrefix = "📅 "
)

var sections = []string{sectionLearned, sectionFelt, sectionCode, sectionLinks}

const entryTemplate = `## ` + datePrefix + `%s

### ` + sectionLearned + `
- 

### ` + sectionFelt + `
- 

### ` + sectionCode + `
` + codeFence + `js
// 코드
` + codeFence + `

### ` + sectionLinks + `
- 
`

func renderEntry(day time.Time) string {
	return fmt.Sprintf(entryTemplate, day.Format(dateLayout))
}
