//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package router

import "fmt"

const systemPrompt = "You are a Telegram bot message router."

const routePrompt = `You are a function router for a Telegram bot about cryptocurrency. Based on the user's message, determine which function should be called:

- "handlePriceQuery" when the user asks for the price of a token, e.g. "$BTC", "What's the price of $ETH?", or just sends a token symbol or name (e.g. "SOL", "bonk"). If it sounds like a token or coin name, assume it is a price query. Return the token symbol WITHOUT the "$" sign.
- "handleTokenAddress" when the user sends a blockchain token address: an Ethereum address (starts with "0x", 42 characters), a Solana address (base58, usually 32-44 characters) or a Bitcoin address. The argument is the address exactly as sent.
- "handleMarketTrends" when the user asks about the overall crypto market or today's trends. No arguments.
- "handleTokenRecommendation" when the user asks for token suggestions. The argument is the category, e.g. "DeFi" or "meme".
- "handleTokenComparison" when the user asks to compare two or more tokens. The argument is the user's full message.
- "handleGeneralQuestion" for any other crypto question. The argument is the user's full message.

Respond ONLY with a raw JSON object like this:
{"function": "handlePriceQuery", "args": ["BTC"]}

User Message: %s`

func buildPrompt(text string) string {
	return fmt.Sprintf(routePrompt, text)
}
