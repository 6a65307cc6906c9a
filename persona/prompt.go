package persona

import (
	"fmt"
	"strings"
)

// wrap frames a task prompt with the character context, matching the shape
// the model is tuned for: identity first, standing instructions, then the
// task itself.
func (c *Character) wrap(task string) string {
	var b strings.Builder
	if c.Description != "" {
		fmt.Fprintf(&b, "You are %s, %s.\n\n", c.Name, c.Description)
	} else {
		fmt.Fprintf(&b, "You are %s.\n\n", c.Name)
	}
	if c.Instructions != "" {
		fmt.Fprintf(&b, "Instructions: %s\n\n", c.Instructions)
	}
	b.WriteString("Please respond to the following prompt:\n")
	b.WriteString(task)
	return b.String()
}

// PostPrompt renders the prompt for a fresh scheduled post.
func (c *Character) PostPrompt() string {
	var b strings.Builder
	tone := "insightful"
	if len(c.Adjectives) > 0 {
		tone = strings.Join(c.Adjectives, ", ")
	}
	fmt.Fprintf(&b, "Generate a tweet that is %s and would catch your audience's attention.\n", tone)
	if len(c.Topics) > 0 {
		b.WriteString("\nChoose ONE of these topics:\n")
		for i, topic := range c.Topics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, topic)
		}
	}
	b.WriteString("\nAdd 2-3 relevant hashtags. Keep the entire tweet under 280 characters.\n")
	b.WriteString("\nDO NOT use generic statements - provide specific, timely insights.\n")
	for _, line := range c.Style.Post {
		b.WriteString(line + "\n")
	}
	return c.wrap(b.String())
}

// ReplyPrompt renders the prompt for a public reply to the given text.
func (c *Character) ReplyPrompt(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Someone tweeted at you: '%s'\n\n", text)
	b.WriteString("Respond with a helpful, informative reply that directly addresses their query or comment.\n")
	b.WriteString("\nYour response should:\n")
	b.WriteString("1. Be knowledgeable and accurate\n")
	b.WriteString("2. Provide specific information, not generic advice\n")
	b.WriteString("3. Include relevant facts or data points when appropriate\n")
	b.WriteString("4. Stay under 280 characters\n")
	b.WriteString("\nIf they're asking a question, answer it directly. If they're sharing an opinion, engage thoughtfully with their perspective.\n")
	for _, line := range c.Style.Reply {
		b.WriteString(line + "\n")
	}
	return c.wrap(b.String())
}

// DirectReplyPrompt renders the prompt for a private direct-message reply.
// Private replies are allowed to run longer than public posts.
func (c *Character) DirectReplyPrompt(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Someone sent you a direct message: '%s'\n\n", text)
	b.WriteString("Respond with a personalized, helpful reply that directly addresses their message.\n")
	b.WriteString("\nYour response should:\n")
	b.WriteString("1. Be knowledgeable and accurate\n")
	b.WriteString("2. Provide specific, actionable information\n")
	b.WriteString("3. Be friendly, conversational, and engaging\n")
	b.WriteString("4. Offer to help further if they have more questions\n")
	b.WriteString("\nSince this is a private message, you can provide more detailed information than in a public tweet.\n")
	for _, line := range c.Style.Reply {
		b.WriteString(line + "\n")
	}
	return c.wrap(b.String())
}
