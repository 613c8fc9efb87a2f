package luaemit

// helperLibrary is the bounded set of Lua helper functions emitted once
// per script (§4.5 "Helper library"). It is written once here rather
// than synthesized per-script because the set of helpers a script
// might need is closed and small; emitting the whole library
// unconditionally keeps the generator simple at the cost of a few
// hundred bytes of unused Lua per script, a trade the teacher's own
// single-pass dispatch-table construction (internal/handler/handler.go)
// makes the same way for its command table.
//
// cjson is assumed to be a global table exposing encode/decode and a
// null sentinel — true unconditionally against a real Redis server
// (cjson is built into its Lua environment) and provided by the
// luarun package's gopher-lua harness as a small native-function shim
// for local differential execution (SPEC_FULL.md §4.5).
const helperLibrary = `
local function __truthy(v)
  if v == nil or v == cjson.null or v == false then return false end
  if v == "" or v == 0 then return false end
  return true
end

local function __nf(v)
  if v == false then return cjson.null end
  return v
end

local function __tostr(v)
  if v == nil or v == cjson.null then return "" end
  if type(v) == "boolean" then
    if v then return "1" else return "0" end
  end
  if type(v) == "number" then
    if v == math.floor(v) then return tostring(math.floor(v)) end
    return tostring(v)
  end
  return tostring(v)
end

local function __tonum(v)
  if type(v) == "number" then return v end
  local n = tonumber(v)
  if n == nil then return cjson.null end
  return n
end

local function __tointstr(v)
  local n = tonumber(v)
  if n == nil then return "" end
  if n < 0 then return tostring(math.ceil(n)) end
  return tostring(math.floor(n))
end

local function __typename(v)
  if v == nil or v == cjson.null then return "nil" end
  if type(v) == "boolean" then return "boolean" end
  if type(v) == "number" then return "number" end
  if type(v) == "table" then return "table" end
  return "string"
end

local function __numOrNil(v)
  if type(v) == "number" then return v end
  if type(v) == "string" then return tonumber(v) end
  return nil
end

local function __compare(op, l, r)
  if op == "lt" or op == "le" or op == "gt" or op == "ge" then
    local ln, rn = __numOrNil(l), __numOrNil(r)
    if ln ~= nil and rn ~= nil then l, r = ln, rn end
  end
  if op == "eq" then return l == r end
  if op == "ne" then return l ~= r end
  if op == "lt" then return l < r end
  if op == "le" then return l <= r end
  if op == "gt" then return l > r end
  if op == "ge" then return l >= r end
  return false
end

-- __index applies the 0-based/negative-from-end IndexExpr rule (§4.1)
-- against a 1-based Lua array table, adjusting by +1 at the point of
-- use rather than at every call site (§4.5 "Index adjustment").
local function __index(t, i)
  if type(t) ~= "table" then return cjson.null end
  local n = #t
  if i < 0 then i = n + i end
  local lua_i = i + 1
  if lua_i < 1 or lua_i > n then return cjson.null end
  return __nf(t[lua_i])
end

local function __collapse(v)
  if type(v) == "table" then
    local n = 0
    for _ in pairs(v) do n = n + 1 end
    if n == 0 then return cjson.null end
  end
  return v
end

local function __set(key, value, nx, xx, keepttl, get, ttlms)
  local args = {key, value}
  if nx then args[#args+1] = "NX" end
  if xx then args[#args+1] = "XX" end
  if get then args[#args+1] = "GET" end
  if keepttl then
    args[#args+1] = "KEEPTTL"
  elseif ttlms and ttlms > 0 then
    args[#args+1] = "PX"
    args[#args+1] = tostring(ttlms)
  end
  return __nf(redis.call("set", unpack(args)))
end

local function __zadd(key, nx, xx, gt, lt, ch, ...)
  local pairsMS = {...}
  local args = {key}
  if nx then args[#args+1] = "NX" end
  if xx then args[#args+1] = "XX" end
  if gt then args[#args+1] = "GT" end
  if lt then args[#args+1] = "LT" end
  if ch then args[#args+1] = "CH" end
  for i = 1, #pairsMS, 2 do
    local member, score = pairsMS[i], pairsMS[i+1]
    args[#args+1] = tostring(score)
    args[#args+1] = member
  end
  return redis.call("zadd", unpack(args))
end

local function __zrange(key, start, stop, rev, withscores)
  local args = {key, tostring(start), tostring(stop)}
  if rev then args[#args+1] = "REV" end
  if withscores then args[#args+1] = "WITHSCORES" end
  return redis.call("zrange", unpack(args))
end

local function __zrangebyscore(key, min, max, rev, withscores, offset, count)
  local cmd, lo, hi
  if rev then
    cmd, lo, hi = "zrevrangebyscore", tostring(max), tostring(min)
  else
    cmd, lo, hi = "zrangebyscore", tostring(min), tostring(max)
  end
  local args = {key, lo, hi}
  if withscores then args[#args+1] = "WITHSCORES" end
  if count and count >= 0 then
    args[#args+1] = "LIMIT"
    args[#args+1] = tostring(offset)
    args[#args+1] = tostring(count)
  end
  return redis.call(cmd, unpack(args))
end

local function __zrank(key, member, rev)
  local cmd = "zrank"
  if rev then cmd = "zrevrank" end
  return __nf(redis.call(cmd, key, member))
end

local function __scan(cursor, pattern, count, typeFilter)
  local args = {tostring(cursor)}
  if pattern ~= "" then args[#args+1] = "MATCH"; args[#args+1] = pattern end
  if count and count > 0 then args[#args+1] = "COUNT"; args[#args+1] = tostring(count) end
  if typeFilter ~= "" then args[#args+1] = "TYPE"; args[#args+1] = typeFilter end
  return redis.call("scan", unpack(args))
end
`
