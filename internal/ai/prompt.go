package ai

const classifySystemPrompt = `You classify ranks on a Minecraft server.
The user sends a JSON object with the rank "name", an optional "description" and an optional "targetAudience" (player, donor or staff).
Pick exactly one level from: player, vip, vip_plus, mvp, mvp_plus, elite, helper, mod, admin, owner.
Donor ranks are vip through elite, staff ranks are helper through owner.
Reply with only a JSON object: {"level": "...", "confidence": "low|medium|high", "reason": "one sentence"}`

const lookupSystemPrompt = `You list the permission nodes of Minecraft server plugins.
The user sends a plugin name. If you know the plugin, list its most important permission nodes.
For each node give the lowest rank level that should normally receive it, one of: player, vip, vip_plus, mvp, mvp_plus, elite, helper, mod, admin, owner,
and a risk level, one of: safe, moderate, dangerous, critical.
Reply with only a JSON object:
{"pluginName": "...", "found": true, "permissions": [{"node": "...", "description": "...", "recommendedRank": "...", "riskLevel": "..."}]}
If you do not know the plugin reply {"pluginName": "...", "found": false, "permissions": []}`
