//
// Copyright (c) 2025 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package token

const analystSystem = "You are a cryptocurrency market analyst. Answer in plain text without markdown."

const insightPrompt = `Analyze this token to help users understand its safety and status:
%s

Provide a concise analysis of the token's safety and current status. Consider:
1. Liquidity levels and their adequacy
2. Trading volume and market activity
3. On-chain transaction frequency
4. The ratio of FDV (Fully Diluted Valuation) to liquidity as a potential risk indicator
5. Any unusual patterns or red flags in the provided metrics

Offer a balanced view of the token's strengths and potential risks to help users make informed decisions.`

const safetyPrompt = `Assign a safety percentage from 0-100%% considering liquidity, volume, and on-chain activity. Consider high FDV relative to liquidity as a risk factor.

Token Metrics:
%s

Provide the safety percentage (e.g., 68%%) followed by a brief reason for the score.
Format: [Percentage]%%: [Reason]`

const recommendPrompt = `A user asked for token recommendations in the category "%s".

These coins are currently trending on CoinGecko:
%s

Suggest a few tokens that fit the request. For each give the symbol, a one-line reason and the main risk. Remind the user that this is not financial advice.`

const comparePrompt = `A user asked: "%s"

Market data for the tokens mentioned:
%s

Compare these tokens on price, market capitalization, trading volume and liquidity. Finish with a short summary of how they differ.`

const trendsPrompt = `Summarize today's cryptocurrency market for a chat user.

Reference assets:
%s

Trending on CoinGecko:
%s

Describe the overall sentiment, notable movers and anything a trader should watch. Keep it brief.`

const tokenQuestionPrompt = `A user asked: "%s"

Market data for the tokens mentioned:
%s

Answer the question using this data. Say so when the data does not cover something the user asked.`

const generalPrompt = `Answer this cryptocurrency question clearly and concisely for a chat user:

%s`
