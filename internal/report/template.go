package report

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="generator" content="nextseqstats {{.Version}}">
<title>{{.Title}}</title>
<script type="text/javascript" src="https://d3js.org/d3.v4.min.js" charset="utf-8"></script>
<style>
body{font-family:'Open Sans',-apple-system,'Segoe UI',sans-serif;color:#212121;margin:16px}
h1{font-size:20px;margin:0 0 12px}
.layout{display:flex;gap:24px;flex-wrap:wrap}
.controls{min-width:220px}
.controls fieldset{border:1px solid #ddd;border-radius:6px;margin-bottom:12px;padding:8px 12px}
.controls legend{font-size:12px;color:#666;text-transform:uppercase;letter-spacing:.05em}
.controls select,.controls button{margin:4px 0;font-size:13px}
.axis{font-size:12px}
.axis path,.axis line{fill:none;stroke:grey;stroke-width:1.5;shape-rendering:crispEdges}
.bar{fill:#0288d1}
.bar:hover{fill:#4fc3f7}
.bar2{fill:#388e3c}
.bar2:hover{fill:#81c784}
.dot{fill:#f57c00;opacity:.75}
.dot:hover{fill:#ffb74d}
.title{font-size:16px;font-weight:bold}
.label{font-size:13px}
.meta{color:#666;font-size:12px;margin-bottom:8px}
#message{color:#ff3300;font-weight:bold;min-height:20px}
div.tooltip{position:absolute;padding:6px 8px;font-size:12px;background:rgba(255,255,255,.95);border:1px solid #bbb;border-radius:6px;pointer-events:none}
.tooltip td{padding:0 6px 0 0}
.tooltip .k{color:#666}
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.RunCount}} runs, {{.MonthCount}} months with positive yield</div>
<div class="layout">
  <div id="plot"></div>
  <div class="controls">
    <fieldset>
      <legend>Per month</legend>
      <select id="monthly-metric" onchange="drawMonthly()">
        <option value="count" selected>Runs per month</option>
        <option value="cd">Avg. cluster density</option>
        <option value="cpf">Avg. clusters passing filter</option>
        <option value="ey">Avg. estimated yield</option>
      </select>
    </fieldset>
    <fieldset>
      <legend>Single month</legend>
      <select id="month-key"></select><br>
      <button type="button" onclick="drawMonth()">Plot</button>
    </fieldset>
    <fieldset>
      <legend>Scatter</legend>
      <label>x <select id="scatter-x"></select></label><br>
      <label>y <select id="scatter-y"></select></label><br>
      <button type="button" onclick="drawScatter()">Plot</button>
    </fieldset>
    <div id="message"></div>
  </div>
</div>
<script id="rundata" type="application/json">{{.Rows}}</script>
<script type="text/javascript">
var columns = {{.Columns}};
var rundat = {{.Rows}};
var labels = {{.Labels}};
var months = {{.Months}};
var numericColumns = {{.NumericColumns}};

var margin = {top: 40, right: 30, bottom: 90, left: 80};
var width = 900 - margin.left - margin.right;
var height = 560 - margin.top - margin.bottom;
var svg = d3.select("#plot").append("svg")
    .attr("width", width + margin.left + margin.right)
    .attr("height", height + margin.top + margin.bottom)
  .append("g")
    .attr("transform", "translate(" + margin.left + "," + margin.top + ")");
var tooltip = d3.select("body").append("div").attr("class", "tooltip").style("opacity", 0);

var metricLabels = {count: "Runs", cd: "Avg. cluster density", cpf: "Avg. clusters passing filter", ey: "Avg. estimated yield"};

function message(text) {
  document.getElementById("message").textContent = text || "";
}

function resetPlot() {
  svg.selectAll("*").remove();
  message("");
}

function axes(x, y, xLabel, yLabel, title, rotate) {
  var xa = svg.append("g").attr("class", "x axis")
      .attr("transform", "translate(0," + height + ")")
      .call(d3.axisBottom(x));
  if (rotate) {
    xa.selectAll("text").attr("y", 0).attr("x", 9).attr("dy", ".35em")
      .attr("transform", "rotate(90)").style("text-anchor", "start");
  }
  svg.append("g").attr("class", "y axis").call(d3.axisLeft(y));
  svg.append("text").attr("class", "title").attr("x", width / 2).attr("y", -16)
      .attr("text-anchor", "middle").text(title);
  svg.append("text").attr("class", "label").attr("x", width / 2).attr("y", height + margin.bottom - 10)
      .attr("text-anchor", "middle").text(xLabel);
  svg.append("text").attr("class", "label").attr("transform", "rotate(-90)")
      .attr("x", -height / 2).attr("y", -margin.left + 20)
      .attr("text-anchor", "middle").text(yLabel);
}

function show(html) {
  tooltip.transition().duration(150).style("opacity", .95);
  tooltip.html(html).style("left", (d3.event.pageX + 12) + "px").style("top", (d3.event.pageY - 28) + "px");
}

function hide() {
  tooltip.transition().duration(300).style("opacity", 0);
}

function monthValue(m, metric) {
  return metric === "count" ? m.count : m[metric];
}

function drawMonthly() {
  resetPlot();
  if (months.length === 0) {
    message("No runs with a positive estimated yield.");
    return;
  }
  var metric = document.getElementById("monthly-metric").value;
  var x = d3.scaleBand().rangeRound([0, width]).padding(0.1).domain(months.map(function(m) { return m.date; }));
  var y = d3.scaleLinear().range([height, 0])
      .domain([0, d3.max(months, function(m) { return monthValue(m, metric); })]).nice();
  axes(x, y, "Month", metricLabels[metric], "Run stats per month", true);
  svg.selectAll(".bar").data(months).enter().append("rect")
      .attr("class", "bar")
      .attr("x", function(m) { return x(m.date); })
      .attr("width", x.bandwidth())
      .attr("y", function(m) { return y(monthValue(m, metric)); })
      .attr("height", function(m) { return height - y(monthValue(m, metric)); })
      .on("mouseover", function(m) {
        var v = monthValue(m, metric);
        show(m.date + ": " + (metric === "count" ? v : v.toFixed(2)));
      })
      .on("mouseout", hide);
}

function drawMonth() {
  resetPlot();
  var key = document.getElementById("month-key").value;
  var m = null;
  for (var i = 0; i < months.length; i++) {
    if (months[i].date === key) { m = months[i]; }
  }
  if (m === null) {
    message("Cannot find data for period " + key);
    return;
  }
  var idx = d3.range(m.yields.length);
  var x = d3.scaleBand().rangeRound([0, width]).padding(0.1).domain(idx);
  var y = d3.scaleLinear().range([height, 0]).domain([0, d3.max(m.yields)]).nice();
  axes(x, y, "Read1 length per run", "Estimated yield", "Runs in " + key, false);
  svg.select(".x.axis").call(d3.axisBottom(x).tickFormat(function(d, i) { return m.run1[i]; }));
  svg.selectAll(".bar2").data(m.yields).enter().append("rect")
      .attr("class", "bar2")
      .attr("x", function(d, i) { return x(i); })
      .attr("width", x.bandwidth())
      .attr("y", function(d) { return y(d); })
      .attr("height", function(d) { return height - y(d); })
      .on("mouseover", function(d, i) {
        show("Read1 " + m.run1[i] + ", Read2 " + m.run2[i] + "<br>Yield " + d.toFixed(2));
      })
      .on("mouseout", hide);
}

function drawScatter() {
  resetPlot();
  var xi = +document.getElementById("scatter-x").value;
  var yi = +document.getElementById("scatter-y").value;
  if (rundat.length === 0) {
    message("No runs found.");
    return;
  }
  var xs = rundat.map(function(r) { return r[xi]; });
  var ys = rundat.map(function(r) { return r[yi]; });
  var x = d3.scaleLinear().range([0, width]).domain(d3.extent(xs)).nice();
  var y = d3.scaleLinear().range([height, 0]).domain(d3.extent(ys)).nice();
  axes(x, y, columns[xi], columns[yi], columns[yi] + " vs " + columns[xi], false);
  svg.selectAll(".dot").data(rundat).enter().append("circle")
      .attr("class", "dot")
      .attr("r", 5)
      .attr("cx", function(r) { return x(r[xi]); })
      .attr("cy", function(r) { return y(r[yi]); })
      .on("mouseover", function(r, i) {
        var l = labels[i];
        show(l.experiment + "<table>" +
          "<tr><td class=\"k\">Run date</td><td>" + l.date + "</td></tr>" +
          "<tr><td class=\"k\">Read1</td><td>" + r[3] + "</td></tr>" +
          "<tr><td class=\"k\">Read2</td><td>" + r[4] + "</td></tr>" +
          "<tr><td class=\"k\">BaseSpaceRunId</td><td>" + l.basespace + "</td></tr>" +
          "<tr><td class=\"k\">LibraryID</td><td>" + l.library + "</td></tr></table>");
      })
      .on("mouseout", hide);
}

function fillSelect(id, items, selected) {
  var sel = document.getElementById(id);
  items.forEach(function(it) {
    var opt = document.createElement("option");
    opt.value = it.value;
    opt.textContent = it.text;
    if (it.value === selected) { opt.selected = true; }
    sel.appendChild(opt);
  });
}

fillSelect("month-key", months.map(function(m) { return {value: m.date, text: m.date}; }), null);
var numericItems = numericColumns.map(function(i) { return {value: String(i), text: columns[i]}; });
fillSelect("scatter-x", numericItems, "10");
fillSelect("scatter-y", numericItems, "12");
drawMonthly();
</script>
</body>
</html>
`
